package prompt

import "fmt"

// GetSystemPrompt provides strict directions and schema for JSON output.
func GetSystemPrompt() string {
	return `You are a senior software architect reviewing a codebase scan. You must produce one valid JSON object only (no markdown, no commentary) that follows the schema below. Do not include code fences.

Requirements:
- Output must be a single JSON object.
- Base every statement on the scan data you are given; do not invent files or dependencies.
- strengths, risks, and recommendations are arrays of short strings; keep items concise.
- maturity is one of: prototype, growing, established.

Schema (example with empty values):
{
  "overview": "<string>",
  "maturity": "<prototype|growing|established>",
  "strengths": ["<string>"],
  "risks": ["<string>"],
  "recommendations": ["<string>"]
}`
}

// GetUserPrompt builds a compact user message around the analysis record.
func GetUserPrompt(analysisJSON string) string {
	return fmt.Sprintf("Review this codebase analysis and respond with the JSON per schema. Analysis: %s", analysisJSON)
}
