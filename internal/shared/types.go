package shared

import (
	"crypto/rand"
	"database/sql/driver"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

type StringSlice []string

func (s StringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	return json.Marshal(s)
}

func (s *StringSlice) Scan(value any) error {
	if value == nil {
		*s = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into StringSlice", value)
	}

	return json.Unmarshal(bytes, s)
}

func NewID(prefix string) string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic("crypto/rand failed: " + err.Error())
	}
	return prefix + hex.EncodeToString(b)
}

type SceneKind string

const (
	SceneKindImage SceneKind = "image"
	SceneKindVideo SceneKind = "video"
)

func (k SceneKind) String() string {
	return string(k)
}

type AnalysisMode string

const (
	ModeOnePass AnalysisMode = "onepass"
	ModeClarify AnalysisMode = "clarify"
)

func (m AnalysisMode) Valid() bool {
	return m == ModeOnePass || m == ModeClarify
}
