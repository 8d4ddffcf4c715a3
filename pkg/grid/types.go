package grid

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Capabilities is the open key/value capability map used by the grid.
type Capabilities map[string]any

// RawStatus is the body of GET {grid}/status. Every field is optional: anything
// missing or of the wrong shape decodes to its zero value instead of failing.
type RawStatus struct {
	Value *RawValue `json:"value,omitempty"`
}

type RawValue struct {
	Ready   *bool         `json:"ready,omitempty"`
	Message string        `json:"message,omitempty"`
	Nodes   List[RawNode] `json:"nodes,omitempty"`
}

func (v *RawValue) UnmarshalJSON(b []byte) error {
	var aux struct {
		Ready   json.RawMessage `json:"ready"`
		Message json.RawMessage `json:"message"`
		Nodes   List[RawNode]   `json:"nodes"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		// value is not an object: same as an empty one
		*v = RawValue{}
		return nil
	}
	var ready bool
	if json.Unmarshal(aux.Ready, &ready) == nil {
		v.Ready = &ready
	}
	_ = json.Unmarshal(aux.Message, &v.Message)
	v.Nodes = aux.Nodes
	return nil
}

type RawNode struct {
	ID           string
	URI          string
	Availability string
	Slots        List[RawSlot]
}

func (n *RawNode) UnmarshalJSON(b []byte) error {
	var aux struct {
		ID           json.RawMessage `json:"id"`
		URI          json.RawMessage `json:"uri"`
		Availability json.RawMessage `json:"availability"`
		Slots        List[RawSlot]   `json:"slots"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	n.ID = stringOf(aux.ID)
	n.URI = stringOf(aux.URI)
	n.Availability = stringOf(aux.Availability)
	n.Slots = aux.Slots
	return nil
}

// RawSlot keeps the slot exactly as the grid sent it in Detail so it can be
// forwarded untouched, next to the few fields the proxy reads.
type RawSlot struct {
	ID         string
	Stereotype Capabilities
	Session    *RawSession
	Detail     json.RawMessage
}

func (s *RawSlot) UnmarshalJSON(b []byte) error {
	var aux struct {
		ID         json.RawMessage `json:"id"`
		Stereotype json.RawMessage `json:"stereotype"`
		Session    json.RawMessage `json:"session"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	s.ID = slotID(aux.ID)
	s.Stereotype = capabilitiesOf(aux.Stereotype)
	s.Detail = append(json.RawMessage(nil), b...)

	s.Session = nil
	if !isNull(aux.Session) {
		var session RawSession
		if err := json.Unmarshal(aux.Session, &session); err == nil {
			s.Session = &session
		}
	}
	return nil
}

type RawSession struct {
	SessionID    string
	Capabilities Capabilities
	Stereotype   Capabilities
	Start        string
	URI          string
}

func (s *RawSession) UnmarshalJSON(b []byte) error {
	var aux struct {
		SessionID    json.RawMessage `json:"sessionId"`
		Capabilities json.RawMessage `json:"capabilities"`
		Stereotype   json.RawMessage `json:"stereotype"`
		Start        json.RawMessage `json:"start"`
		URI          json.RawMessage `json:"uri"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	s.SessionID = stringOf(aux.SessionID)
	s.Capabilities = capabilitiesOf(aux.Capabilities)
	s.Stereotype = capabilitiesOf(aux.Stereotype)
	s.Start = stringOf(aux.Start)
	s.URI = stringOf(aux.URI)
	return nil
}

// List decodes a JSON array leniently: a missing, null or malformed array is an
// empty list, and null elements or elements that do not decode are skipped.
type List[T any] []T

func (l *List[T]) UnmarshalJSON(b []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		*l = nil
		return nil
	}
	items := make([]T, 0, len(raw))
	for _, r := range raw {
		var item T
		if isNull(r) || json.Unmarshal(r, &item) != nil {
			continue
		}
		items = append(items, item)
	}
	*l = items
	return nil
}

// QueueStatus is the body of GET {grid}/se/grid/newsessionqueue/queue.
type QueueStatus struct {
	Value List[json.RawMessage] `json:"value"`
}

type newSessionRequest struct {
	DesiredCapabilities map[string]any  `json:"desiredCapabilities"`
	Capabilities        w3cCapabilities `json:"capabilities"`
}

type w3cCapabilities struct {
	AlwaysMatch map[string]any `json:"alwaysMatch"`
}

// webDriverError is the value of a failed WebDriver answer.
type webDriverError struct {
	Value struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	} `json:"value"`
}

// upstreamMessage extracts the WebDriver error of a failed answer, if any.
func upstreamMessage(body []byte) error {
	var e webDriverError
	if json.Unmarshal(body, &e) != nil || (e.Value.Error == "" && e.Value.Message == "") {
		return nil
	}
	if e.Value.Message == "" {
		return errors.New(e.Value.Error)
	}
	if e.Value.Error == "" {
		return errors.New(e.Value.Message)
	}
	return fmt.Errorf("%s: %s", e.Value.Error, e.Value.Message)
}

func isNull(b json.RawMessage) bool {
	b = bytes.TrimSpace(b)
	return len(b) == 0 || bytes.Equal(b, []byte("null"))
}

func stringOf(b json.RawMessage) string {
	var s string
	if json.Unmarshal(b, &s) != nil {
		return ""
	}
	return s
}

func capabilitiesOf(b json.RawMessage) Capabilities {
	if isNull(b) {
		return nil
	}
	var c Capabilities
	if json.Unmarshal(b, &c) != nil {
		return nil
	}
	return c
}

// slotID accepts both the plain string form and the grid 4 {"hostId", "id"} form.
func slotID(b json.RawMessage) string {
	if s := stringOf(b); s != "" {
		return s
	}
	var composite struct {
		ID string `json:"id"`
	}
	if json.Unmarshal(b, &composite) == nil {
		return composite.ID
	}
	return ""
}
