package models

import "encoding/json"

// OptionalString is a JSON field that distinguishes three states: absent
// from the payload, explicitly null, and set to a value. encoding/json only
// calls UnmarshalJSON for fields that are present, so Set stays false for
// omitted fields.
type OptionalString struct {
	Set   bool
	Value *string
}

func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

func (o OptionalString) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.Value)
}
