// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

// Package sentinel implements the local data-loss-prevention pass: it
// rewrites secret-shaped substrings to a fixed token before any code
// window leaves the machine.
package sentinel

import "regexp"

const redacted = "<SECRET_REDACTED>"

type rule struct {
	name    string
	pattern *regexp.Regexp
}

// Sentinel compiles its rule set once at construction and reuses the
// compiled expressions on every Sanitize call.
type Sentinel struct {
	rules []rule
}

// New compiles the rule set. Rules are applied in the order below; the
// output of rule i becomes the input of rule i+1.
func New() *Sentinel {
	return &Sentinel{
		rules: []rule{
			{"aws_access_key", regexp.MustCompile(`AKIA[0-9A-Z]{16}`)},
			{"aws_secret_key", regexp.MustCompile(`(?i)(aws_secret_access_key|aws_secret)\s*=\s*["']?[A-Za-z0-9/+=]{40}`)},
			{"openai_key", regexp.MustCompile(`sk-proj-[a-zA-Z0-9_\-]{20,}`)},
			{"stripe_key", regexp.MustCompile(`(?:sk|pk)_(?:test|live)_[a-zA-Z0-9]{20,}`)},
			{"google_api_key", regexp.MustCompile(`AIza[0-9A-Za-z_\-]{35}`)},
			{"db_uri", regexp.MustCompile(`(?:mongodb|postgres|mysql|redis)://[^\s"']+:[^\s"']+@[^\s"']+`)},
			{"generic_credential", regexp.MustCompile(`(?i)(password|secret|token|api_key|apikey|pwd|db_pass)\s*[=:]\s*["'][^"']{3,}["']`)},
			{"email", regexp.MustCompile(`[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z]{2,}`)},
			{"private_ip", regexp.MustCompile(`(?:10|172\.(?:1[6-9]|2[0-9]|3[01])|192\.168)\.\d{1,3}\.\d{1,3}`)},
		},
	}
}

// Sanitize returns text with every rule-matching substring replaced by
// the redaction token. Pure, total, operates entirely in memory.
func (s *Sentinel) Sanitize(text string) string {
	result := text
	for _, r := range s.rules {
		result = r.pattern.ReplaceAllString(result, redacted)
	}
	return result
}
