// Package chat implements the help widget: a keyword responder on the server
// and a serialising client queue.
package chat

import "strings"

// Action is a suggested follow-up shown under a reply
type Action struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Reply is what the widget renders
type Reply struct {
	Response string   `json:"response"`
	Actions  []Action `json:"actions"`
}

// Rule answers when any keyword occurs in the lower-cased message
type Rule struct {
	Keywords []string
	Reply    Reply
}

// Responder evaluates rules in order; the first match wins
type Responder struct {
	rules    []Rule
	fallback Reply
}

// DefaultRules is the stock rule table. Order matters: a message mentioning
// both an appointment and a doctor is answered as an appointment question.
var DefaultRules = []Rule{
	{
		Keywords: []string{"appointment"},
		Reply: Reply{
			Response: "To book an appointment, choose a hospital, a department and a doctor, then pick a free time slot. You can review or cancel upcoming appointments from your dashboard.",
			Actions: []Action{
				{Label: "Book appointment", URL: "/appointments/new"},
				{Label: "My appointments", URL: "/appointments"},
			},
		},
	},
	{
		Keywords: []string{"doctor"},
		Reply: Reply{
			Response: "You can browse doctors by hospital and department, see their specialty and experience, and read approved patient reviews.",
			Actions: []Action{
				{Label: "Find a doctor", URL: "/doctors"},
			},
		},
	},
	{
		Keywords: []string{"hospital"},
		Reply: Reply{
			Response: "Our network lists every active hospital with its departments and contact details.",
			Actions: []Action{
				{Label: "View hospitals", URL: "/hospitals"},
			},
		},
	},
	{
		Keywords: []string{"payment"},
		Reply: Reply{
			Response: "Payments are settled at the hospital reception after your visit. Contact the hospital directly for billing questions.",
			Actions: []Action{
				{Label: "Contact a hospital", URL: "/hospitals"},
			},
		},
	},
	{
		Keywords: []string{"hello", "hi", "hey"},
		Reply: Reply{
			Response: "Hello! I can help you with appointments, doctors, hospitals and payments. What would you like to know?",
			Actions: []Action{
				{Label: "Book appointment", URL: "/appointments/new"},
				{Label: "Find a doctor", URL: "/doctors"},
			},
		},
	},
}

// DefaultFallback answers anything no rule matched
var DefaultFallback = Reply{
	Response: "I'm not sure I understood that. Try asking about appointments, doctors, hospitals or payments.",
	Actions: []Action{
		{Label: "Book appointment", URL: "/appointments/new"},
		{Label: "View hospitals", URL: "/hospitals"},
	},
}

// NewResponder builds a Responder over rules
func NewResponder(rules []Rule, fallback Reply) *Responder {
	return &Responder{rules: rules, fallback: fallback}
}

// NewDefaultResponder builds a Responder over the stock rule table
func NewDefaultResponder() *Responder {
	return NewResponder(DefaultRules, DefaultFallback)
}

// Respond matches message by substring against the rule table
func (r *Responder) Respond(message string) Reply {
	text := strings.ToLower(message)
	for _, rule := range r.rules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(text, keyword) {
				return rule.Reply
			}
		}
	}
	return r.fallback
}
