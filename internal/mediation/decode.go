package mediation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// stripCodeFence removes a surrounding ```json ... ``` block.
func stripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// decodeObject parses reply as a JSON object. An empty reply is an empty object.
func decodeObject(reply string) (map[string]json.RawMessage, error) {
	body := stripCodeFence(reply)
	if body == "" {
		return map[string]json.RawMessage{}, nil
	}
	var obj map[string]json.RawMessage
	dec := json.NewDecoder(strings.NewReader(body))
	if err := dec.Decode(&obj); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data after JSON object", ErrMalformedResponse)
	}
	if obj == nil {
		return nil, fmt.Errorf("%w: reply is not a JSON object", ErrMalformedResponse)
	}
	return obj, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func requiredString(obj map[string]json.RawMessage, key string) (string, error) {
	raw, ok := obj[key]
	if !ok || isNull(raw) {
		return "", fmt.Errorf("%w: missing %q", ErrMalformedResponse, key)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("%w: %q is not a string", ErrMalformedResponse, key)
	}
	return s, nil
}

func requiredStrings(obj map[string]json.RawMessage, key string) ([]string, error) {
	raw, ok := obj[key]
	if !ok || isNull(raw) {
		return nil, fmt.Errorf("%w: missing %q", ErrMalformedResponse, key)
	}
	return stringList(raw, key)
}

func optionalStrings(obj map[string]json.RawMessage, key string) ([]string, error) {
	raw, ok := obj[key]
	if !ok || isNull(raw) {
		return []string{}, nil
	}
	return stringList(raw, key)
}

func stringList(raw json.RawMessage, key string) ([]string, error) {
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: %q is not a list of strings", ErrMalformedResponse, key)
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}

func decodeTechnical(reply string) (TechnicalData, error) {
	obj, err := decodeObject(reply)
	if err != nil {
		return TechnicalData{}, err
	}
	var td TechnicalData
	if td.Tension, err = requiredString(obj, "tension"); err != nil {
		return TechnicalData{}, err
	}
	if td.Density, err = requiredString(obj, "density"); err != nil {
		return TechnicalData{}, err
	}
	if td.Errors, err = requiredStrings(obj, "errors"); err != nil {
		return TechnicalData{}, err
	}
	if td.Suggestions, err = requiredStrings(obj, "suggestions"); err != nil {
		return TechnicalData{}, err
	}
	return td, nil
}

func decodeCultural(reply string) (CulturalData, error) {
	obj, err := decodeObject(reply)
	if err != nil {
		return CulturalData{}, err
	}
	var cd CulturalData
	if cd.SymbolName, err = requiredString(obj, "symbolName"); err != nil {
		return CulturalData{}, err
	}
	if cd.Meaning, err = requiredString(obj, "meaning"); err != nil {
		return CulturalData{}, err
	}
	if cd.Accuracy, err = requiredString(obj, "accuracy"); err != nil {
		return CulturalData{}, err
	}
	if cd.Question, err = requiredString(obj, "question"); err != nil {
		return CulturalData{}, err
	}
	return cd, nil
}

func decodeJournal(reply string) (JournalAnalysis, error) {
	obj, err := decodeObject(reply)
	if err != nil {
		return JournalAnalysis{}, err
	}
	ja := JournalAnalysis{Reflection: DefaultReflection}
	if ja.Emotions, err = optionalStrings(obj, "emotions"); err != nil {
		return JournalAnalysis{}, err
	}
	if ja.Tags, err = optionalStrings(obj, "tags"); err != nil {
		return JournalAnalysis{}, err
	}
	if raw, ok := obj["reflection"]; ok && !isNull(raw) {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return JournalAnalysis{}, fmt.Errorf("%w: %q is not a string", ErrMalformedResponse, "reflection")
		}
		if strings.TrimSpace(s) != "" {
			ja.Reflection = s
		}
	}
	return ja, nil
}
