package models

import (
	"bytes"

	json "github.com/goccy/go-json"
)

// FlexString accepts a JSON string or number and keeps the raw text either
// way. The dashboard abbreviates some counters for humans ("1.7K") and
// returns plain numbers elsewhere; no numeric parsing happens here, the
// value is passed through for the gadget to render.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	*f = FlexString(data)
	return nil
}

func (f FlexString) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(f))
}

func (f FlexString) String() string {
	return string(f)
}
