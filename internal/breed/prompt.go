package breed

// Instruction is the fixed system prompt sent with every image. Engines must
// not alter it per request.
const Instruction = `You are an expert in cattle breeds. Identify the breed of the cow shown in the image.
Examine the coloration, the body structure and the shape of the head.
In the description, name the regions of the world where the breed is commonly found.
Report a confidence value between 0.0 and 1.0 for the identification.
If the image does not clearly show a cow, do not guess: set the error field to a short
message saying that no cow was detected and leave the other fields empty.
Respond with JSON only.`

// ResponseShape is the reply schema in JSON Schema notation, embedded into
// prompts for backends without a native structured-output mode. No field is
// required; the model may omit any of them.
const ResponseShape = `{
  "type": "object",
  "properties": {
    "breed":       {"type": "string", "description": "The identified cow breed, common or scientific name."},
    "description": {"type": "string", "description": "One paragraph about the breed, including the regions where it is commonly found."},
    "confidence":  {"type": "number", "description": "Confidence in the identification, from 0.0 to 1.0."},
    "error":       {"type": "string", "description": "Set only when the image does not clearly contain a cow."}
  }
}`
