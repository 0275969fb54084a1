package breed

import "encoding/json"

// Result is the outcome of one recognition call. Exactly one arm is
// populated: either the identified breed or an error message.
type Result struct {
	Breed       string
	Description string
	Confidence  float64
	Err         string
}

func Success(breed, description string, confidence float64) Result {
	return Result{Breed: breed, Description: description, Confidence: confidence}
}

func Failure(msg string) Result {
	return Result{Err: msg}
}

// OK reports whether the result carries a breed rather than an error.
func (r Result) OK() bool { return r.Err == "" }

// MarshalJSON emits only the populated arm.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.Err != "" {
		return json.Marshal(struct {
			Error string `json:"error"`
		}{r.Err})
	}
	return json.Marshal(struct {
		Breed       string  `json:"breed"`
		Description string  `json:"description"`
		Confidence  float64 `json:"confidence"`
	}{r.Breed, r.Description, r.Confidence})
}
