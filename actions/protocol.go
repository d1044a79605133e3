// Package actions implements the custom actions the dialogue engine calls
// through its action server webhook: form slot validation, booking
// submission and catalog browsing.
package actions

import (
	"fmt"
	"strconv"
	"strings"

	"travel-backend/utils"
)

// Event is a tracker event as exchanged with the dialogue engine
// ({"event": "slot", "name": ..., "value": ...}, {"event": "user", ...}).
type Event map[string]interface{}

func (e Event) Type() string {
	s, _ := e["event"].(string)
	return s
}

// SlotSet builds a slot event. A nil value clears the slot.
func SlotSet(name string, value interface{}) Event {
	return Event{"event": "slot", "timestamp": nil, "name": name, "value": value}
}

type LatestMessage struct {
	Text   string                 `json:"text"`
	Intent map[string]interface{} `json:"intent,omitempty"`
}

type Tracker struct {
	SenderID      string                 `json:"sender_id"`
	Slots         map[string]interface{} `json:"slots"`
	LatestMessage LatestMessage          `json:"latest_message"`
	Events        []Event                `json:"events"`
}

func (t *Tracker) Slot(name string) interface{} {
	if t.Slots == nil {
		return nil
	}
	return t.Slots[name]
}

// SlotString returns the slot stringified and trimmed; unset slots are "".
func (t *Tracker) SlotString(name string) string {
	return stringify(t.Slot(name))
}

// SlotInt reads a count slot, which arrives as a JSON number once validated
// and as text before that. Anything unreadable is 0.
func (t *Tracker) SlotInt(name string) int {
	switch v := t.Slot(name).(type) {
	case float64:
		return int(v)
	case int:
		return v
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0
		}
		return n
	}
	return 0
}

// RecentSlotEvents returns the slot values set after the latest user event,
// in order. ok is false when no slot event was found.
func (t *Tracker) RecentSlotEvents() (slots map[string]interface{}, order []string, ok bool) {
	slots = map[string]interface{}{}
	for i := len(t.Events) - 1; i >= 0; i-- {
		e := t.Events[i]
		if e.Type() == "user" {
			break
		}
		if e.Type() != "slot" {
			continue
		}
		name, _ := e["name"].(string)
		if name == "" {
			continue
		}
		if _, seen := slots[name]; seen {
			continue
		}
		slots[name] = e["value"]
		order = append([]string{name}, order...)
	}
	return slots, order, len(order) > 0
}

// LastBotText is the text of the most recent bot event that had one.
func (t *Tracker) LastBotText() (string, bool) {
	for i := len(t.Events) - 1; i >= 0; i-- {
		e := t.Events[i]
		if e.Type() != "bot" {
			continue
		}
		if s, _ := e["text"].(string); s != "" {
			return s, true
		}
	}
	return "", false
}

// Request is the body the dialogue engine posts to the action webhook.
type Request struct {
	NextAction string                 `json:"next_action" binding:"required"`
	SenderID   string                 `json:"sender_id"`
	Tracker    Tracker                `json:"tracker"`
	Domain     map[string]interface{} `json:"domain"`
}

// Message is one bot utterance returned to the dialogue engine.
type Message struct {
	Text    string         `json:"text,omitempty"`
	Buttons []utils.Button `json:"buttons,omitempty"`
	Custom  interface{}    `json:"custom,omitempty"`
}

type Response struct {
	Events    []Event   `json:"events"`
	Responses []Message `json:"responses"`
}

// Dispatcher collects the messages an action wants to send.
type Dispatcher struct {
	Messages []Message
}

func (d *Dispatcher) Utter(text string) {
	d.Messages = append(d.Messages, Message{Text: text})
}

func (d *Dispatcher) UtterButtons(text string, buttons []utils.Button) {
	d.Messages = append(d.Messages, Message{Text: text, Buttons: buttons})
}

func (d *Dispatcher) UtterCustom(custom interface{}) {
	d.Messages = append(d.Messages, Message{Custom: custom})
}

func stringify(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case float64:
		if x == float64(int64(x)) {
			return strconv.FormatInt(int64(x), 10)
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return strings.TrimSpace(fmt.Sprint(x))
	}
}
