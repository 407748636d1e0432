package dispatch

import (
	"time"

	"github.com/zulandar/orderdesk/internal/models"
)

// ResponseType discriminates the structured reply shapes the dispatcher
// can produce.
type ResponseType string

const (
	// ResponseMenu is the main menu listing.
	ResponseMenu ResponseType = "menu"
	// ResponseOrderList is the caller's orders (id + status projection).
	ResponseOrderList ResponseType = "order_list"
	// ResponseOrderPrompt offers Track/Cancel for a just-selected order.
	ResponseOrderPrompt ResponseType = "order_prompt"
	// ResponseOrderStatus reports one order's status and delivery date.
	ResponseOrderStatus ResponseType = "order_status"
	// ResponseAgent reports a successful agent assignment.
	ResponseAgent ResponseType = "agent"
	// ResponseAgentUnavailable means every agent is busy.
	ResponseAgentUnavailable ResponseType = "agent_unavailable"
	// ResponseNotFound means a referenced order does not exist.
	ResponseNotFound ResponseType = "not_found"
	// ResponseMessage is a plain confirmation line.
	ResponseMessage ResponseType = "message"
)

// Response is the structured reply returned by Dispatcher.Handle. Only the
// fields relevant to Type are populated.
type Response struct {
	Type         ResponseType          `json:"type"`
	Message      string                `json:"message,omitempty"`
	Options      []string              `json:"options,omitempty"`
	Orders       []models.OrderSummary `json:"orders,omitempty"`
	OrderID      string                `json:"order_id,omitempty"`
	Status       string                `json:"status,omitempty"`
	DeliveryDate *time.Time            `json:"delivery_date,omitempty"`
	Agent        *AgentInfo            `json:"agent,omitempty"`
}

// AgentInfo is the agent contact card included in assignment replies.
type AgentInfo struct {
	AgentID string `json:"agent_id"`
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
}

// menuResponse returns the main menu listing.
func menuResponse() Response {
	return Response{
		Type:    ResponseMenu,
		Message: "How can I help you?",
		Options: []string{OptionOrders, OptionTalkToAgent},
	}
}
