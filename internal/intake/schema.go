package intake

// Schema is the JSON Schema (Draft 2020-12) for a response file.
// YAML response files are checked against it after conversion.
const Schema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://github.com/unbound-force/tangle/response.schema.json",
  "title": "Tangle Response",
  "description": "Input schema for tangle evaluate",
  "type": "object",
  "required": ["answers"],
  "additionalProperties": false,
  "properties": {
    "answers": {
      "type": "array",
      "description": "Selected option id per question in order; empty for unanswered",
      "items": { "type": "string" }
    },
    "favorites": {
      "type": "array",
      "description": "One favorite option id per section, in section order",
      "maxItems": 3,
      "items": { "type": "string", "minLength": 1 }
    },
    "completion_minutes": {
      "type": "number",
      "minimum": 0
    }
  }
}`
