package report

// Schema is the JSON Schema (Draft 2020-12) for the tangle evaluation
// JSON output. It documents the structure returned by WriteJSON.
const Schema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://github.com/unbound-force/tangle/evaluation.schema.json",
  "title": "Tangle Evaluation Report",
  "description": "Output schema for tangle evaluate --format=json",
  "type": "object",
  "required": ["version", "answered", "result", "analysis"],
  "properties": {
    "version": {
      "type": "string",
      "description": "Schema version (semver)"
    },
    "session_id": {
      "type": "string",
      "description": "Id of the stored session, when saved"
    },
    "answered": {
      "type": "integer",
      "minimum": 0
    },
    "result": { "$ref": "#/$defs/Result" },
    "analysis": { "$ref": "#/$defs/Analysis" },
    "comparison": { "$ref": "#/$defs/Comparison" }
  },
  "$defs": {
    "Counts": {
      "type": "object",
      "description": "Occurrences per uppercase letter",
      "propertyNames": { "pattern": "^[A-Z]$" },
      "additionalProperties": { "type": "integer", "minimum": 0 }
    },
    "Result": {
      "type": "object",
      "required": [
        "counts", "tables", "winners", "summary", "binary",
        "consensus", "aggregate", "code", "traits"
      ],
      "properties": {
        "counts": { "$ref": "#/$defs/Counts" },
        "tables": {
          "type": "array",
          "items": { "$ref": "#/$defs/TableResult" }
        },
        "winners": { "type": "string", "pattern": "^[A-Z]*$" },
        "summary": { "type": "string", "enum": ["T", "U", ""] },
        "binary": { "$ref": "#/$defs/Binary" },
        "consensus": { "type": "string", "pattern": "^[A-Z]*$" },
        "aggregate": { "type": "string", "pattern": "^[A-Z]*$" },
        "code": {
          "type": "string",
          "pattern": "^[A-Z]*$",
          "description": "Final result code: aggregate followed by consensus"
        },
        "traits": {
          "type": "array",
          "items": { "$ref": "#/$defs/Trait" }
        }
      }
    },
    "TableResult": {
      "type": "object",
      "required": ["tier", "threshold", "pairs", "winners"],
      "properties": {
        "tier": { "type": "string", "enum": ["strong", "moderate", "mild"] },
        "threshold": { "type": "integer", "minimum": 0 },
        "pairs": {
          "type": "array",
          "items": { "$ref": "#/$defs/PairOutcome" }
        },
        "winners": {
          "type": "array",
          "items": { "type": "string", "pattern": "^[A-Z]$" }
        }
      }
    },
    "PairOutcome": {
      "type": "object",
      "required": ["pair", "first_count", "second_count", "difference"],
      "properties": {
        "pair": { "type": "string", "pattern": "^[A-Z]{2}$" },
        "first_count": { "type": "integer", "minimum": 0 },
        "second_count": { "type": "integer", "minimum": 0 },
        "difference": { "type": "integer", "minimum": 0 },
        "winner": { "type": "string", "pattern": "^[A-Z]$" }
      }
    },
    "Binary": {
      "type": "object",
      "required": ["v_count", "w_count", "selection"],
      "properties": {
        "v_count": { "type": "integer", "minimum": 0 },
        "w_count": { "type": "integer", "minimum": 0 },
        "selection": { "type": "string", "enum": ["V", "W", "VW"] }
      }
    },
    "Trait": {
      "type": "object",
      "required": ["code", "name", "description"],
      "properties": {
        "code": { "type": "string" },
        "name": { "type": "string" },
        "description": { "type": "string" }
      }
    },
    "Share": {
      "type": "object",
      "required": ["letter", "count", "percentage"],
      "properties": {
        "letter": { "type": "string" },
        "count": { "type": "integer", "minimum": 0 },
        "percentage": { "type": "integer", "minimum": 0, "maximum": 100 }
      }
    },
    "Analysis": {
      "type": "object",
      "required": ["dominant", "secondary", "profile", "strengths", "recommendations"],
      "properties": {
        "dominant": { "$ref": "#/$defs/Share" },
        "secondary": { "$ref": "#/$defs/Share" },
        "profile": {
          "type": "array",
          "items": { "$ref": "#/$defs/Share" }
        },
        "strengths": { "type": "array", "items": { "type": "string" } },
        "recommendations": { "type": "array", "items": { "type": "string" } }
      }
    },
    "Comparison": {
      "type": "object",
      "required": ["average_profile", "consistency", "growth"],
      "properties": {
        "average_profile": { "$ref": "#/$defs/Counts" },
        "consistency": { "type": "number", "minimum": 0, "maximum": 100 },
        "growth": { "type": "array", "items": { "type": "string" } }
      }
    }
  }
}`
