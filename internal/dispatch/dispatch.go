// Package dispatch implements the conversation state machine at the heart
// of Orderdesk. Each inbound (user, message) pair is routed by the user's
// persisted session state; messages no menu rule matches fall through to
// the intent classifier and order-id extractor.
package dispatch

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/zulandar/orderdesk/internal/intent"
	"github.com/zulandar/orderdesk/internal/models"
	"github.com/zulandar/orderdesk/internal/store"
)

// Menu option strings. Matched case-sensitively, the way they are rendered.
const (
	OptionOrders      = "Orders"
	OptionTalkToAgent = "Talk to Agent"
	OptionTrack       = "Track"
	OptionCancel      = "Cancel"
)

// Dispatcher routes one message at a time through the session state
// machine. It is stateless between calls except via the session store, so
// a single instance serves all users concurrently. Concurrent messages
// from the same user race on the session read-modify-write and the last
// write wins; that hazard is accepted.
type Dispatcher struct {
	sessions   *store.SessionStore
	orders     *store.OrderStore
	agents     *store.AgentStore
	classifier *intent.Classifier
	out        io.Writer
}

// Opts holds parameters for creating a Dispatcher.
type Opts struct {
	Sessions   *store.SessionStore
	Orders     *store.OrderStore
	Agents     *store.AgentStore
	Classifier *intent.Classifier // trained, immutable, shared
	Out        io.Writer          // defaults to os.Stdout
}

// New creates a Dispatcher.
func New(opts Opts) (*Dispatcher, error) {
	if opts.Sessions == nil {
		return nil, fmt.Errorf("dispatch: session store is required")
	}
	if opts.Orders == nil {
		return nil, fmt.Errorf("dispatch: order store is required")
	}
	if opts.Agents == nil {
		return nil, fmt.Errorf("dispatch: agent store is required")
	}
	if opts.Classifier == nil {
		return nil, fmt.Errorf("dispatch: classifier is required")
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	return &Dispatcher{
		sessions:   opts.Sessions,
		orders:     opts.Orders,
		agents:     opts.Agents,
		classifier: opts.Classifier,
		out:        out,
	}, nil
}

// Handle routes a single user message and returns the structured reply.
// Branches that change conversation state persist the session before
// returning; a crash in between leaves the old state, which is accepted.
func (d *Dispatcher) Handle(userID, message string) (Response, error) {
	session, err := d.sessions.GetOrCreate(userID)
	if err != nil {
		return Response{}, err
	}

	state := session.State
	if !state.Valid() {
		// Closed enum: an unrecognized stored value is corrupt, not a
		// state to silently match. Restart the conversation.
		fmt.Fprintf(d.out, "dispatch: user %s has invalid session state %q, resetting\n", userID, state)
		state = models.StateMainMenu
	}

	text := strings.TrimSpace(message)

	// Global escape: "start"/"menu" resets from any state, checked before
	// any state-specific rule.
	if lower := strings.ToLower(text); lower == "start" || lower == "menu" {
		if err := d.reset(userID); err != nil {
			return Response{}, err
		}
		return menuResponse(), nil
	}

	switch state {
	case models.StateMainMenu:
		switch text {
		case OptionOrders:
			return d.listOrders(userID)
		case OptionTalkToAgent:
			return d.assignAgent()
		}

	case models.StateViewingOrders:
		return d.selectOrder(userID, text)

	case models.StateOrderSelected:
		if session.SelectedOrder == nil {
			// Invariant breach (selected_order must be set in this state);
			// degrade to the menu rather than error.
			fmt.Fprintf(d.out, "dispatch: user %s in ORDER_SELECTED with no selected order\n", userID)
			return menuResponse(), nil
		}
		switch text {
		case OptionTrack:
			return d.trackOrder(*session.SelectedOrder)
		case OptionCancel:
			return d.cancelOrder(*session.SelectedOrder)
		}
	}

	return d.fallback(text)
}

// reset moves the session to MAIN_MENU and clears the selected order.
func (d *Dispatcher) reset(userID string) error {
	state := models.StateMainMenu
	return d.sessions.Update(userID, store.SessionPatch{
		State:              &state,
		ClearSelectedOrder: true,
	})
}

// listOrders returns the caller's orders and moves to VIEWING_ORDERS.
func (d *Dispatcher) listOrders(userID string) (Response, error) {
	orders, err := d.orders.FindByUser(userID)
	if err != nil {
		return Response{}, err
	}
	state := models.StateViewingOrders
	if err := d.sessions.Update(userID, store.SessionPatch{State: &state}); err != nil {
		return Response{}, err
	}
	return Response{
		Type:    ResponseOrderList,
		Message: "Here are your orders. Send an order id to pick one.",
		Orders:  orders,
	}, nil
}

// selectOrder records the message as the chosen order id and offers the
// Track/Cancel actions. The choice is not validated against the order
// store at selection time.
func (d *Dispatcher) selectOrder(userID, choice string) (Response, error) {
	state := models.StateOrderSelected
	if err := d.sessions.Update(userID, store.SessionPatch{
		State:         &state,
		SelectedOrder: &choice,
	}); err != nil {
		return Response{}, err
	}
	return Response{
		Type:    ResponseOrderPrompt,
		Message: fmt.Sprintf("What would you like to do with %s?", choice),
		OrderID: choice,
		Options: []string{OptionTrack, OptionCancel},
	}, nil
}

// trackOrder reports an order's status and delivery date. A miss is a
// not-found reply, not an error.
func (d *Dispatcher) trackOrder(orderID string) (Response, error) {
	order, err := d.orders.FindByID(orderID)
	if errors.Is(err, store.ErrOrderNotFound) {
		return Response{
			Type:    ResponseNotFound,
			Message: fmt.Sprintf("Order %s was not found.", orderID),
			OrderID: orderID,
		}, nil
	}
	if err != nil {
		return Response{}, err
	}
	return Response{
		Type:         ResponseOrderStatus,
		OrderID:      order.OrderID,
		Status:       order.Status,
		DeliveryDate: order.DeliveryDate,
	}, nil
}

// cancelOrder sets the order's status to cancelled. Unknown ids are a
// silent no-op in the store; the confirmation is returned regardless, and
// cancelling twice lands in the same final state.
func (d *Dispatcher) cancelOrder(orderID string) (Response, error) {
	if err := d.orders.SetStatus(orderID, models.OrderStatusCancelled); err != nil {
		return Response{}, err
	}
	return Response{
		Type:    ResponseMessage,
		Message: fmt.Sprintf("%s cancelled", orderID),
		OrderID: orderID,
	}, nil
}

// assignAgent hands the user to an available agent, marking the agent
// busy. No session state changes either way.
func (d *Dispatcher) assignAgent() (Response, error) {
	agent, err := d.agents.FindAvailable()
	if errors.Is(err, store.ErrNoAgentAvailable) {
		return Response{
			Type:    ResponseAgentUnavailable,
			Message: "All agents are currently busy. Please try again later.",
		}, nil
	}
	if err != nil {
		return Response{}, err
	}
	if err := d.agents.Assign(agent.AgentID); err != nil {
		return Response{}, err
	}
	return Response{
		Type:    ResponseAgent,
		Message: fmt.Sprintf("%s will help you shortly.", agent.Name),
		Agent: &AgentInfo{
			AgentID: agent.AgentID,
			Name:    agent.Name,
			Phone:   agent.Phone,
		},
	}, nil
}

// fallback runs the classifier and extractor on a message no menu rule
// matched. The default branch shows the menu without touching session
// state — a display, not a transition.
func (d *Dispatcher) fallback(text string) (Response, error) {
	label := d.classifier.Classify(text)
	orderID, found := intent.ExtractOrderID(text)

	switch {
	case label == intent.LabelTrack && found:
		return d.trackOrder(orderID)
	case label == intent.LabelCancel && found:
		return d.cancelOrder(orderID)
	case label == intent.LabelAgent:
		return d.assignAgent()
	}
	return menuResponse(), nil
}
