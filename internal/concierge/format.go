package concierge

import (
	"fmt"
	"strings"

	"github.com/zulandar/orderdesk/internal/dispatch"
)

// RenderText turns a dispatcher response into plain chat text. All
// platforms get the same rendering; adapters may re-style it natively.
func RenderText(resp dispatch.Response) string {
	switch resp.Type {
	case dispatch.ResponseMenu, dispatch.ResponseOrderPrompt:
		var b strings.Builder
		b.WriteString(resp.Message)
		for _, opt := range resp.Options {
			b.WriteString("\n• ")
			b.WriteString(opt)
		}
		return b.String()

	case dispatch.ResponseOrderList:
		if len(resp.Orders) == 0 {
			return "You have no orders yet."
		}
		var b strings.Builder
		b.WriteString(resp.Message)
		for _, o := range resp.Orders {
			fmt.Fprintf(&b, "\n• %s — %s", o.OrderID, o.Status)
		}
		return b.String()

	case dispatch.ResponseOrderStatus:
		line := fmt.Sprintf("Order %s is %s.", resp.OrderID, resp.Status)
		if resp.DeliveryDate != nil {
			line += fmt.Sprintf(" Expected delivery: %s.", resp.DeliveryDate.Format("Mon, 2 Jan 2006"))
		}
		return line

	case dispatch.ResponseAgent:
		line := resp.Message
		if resp.Agent != nil && resp.Agent.Phone != "" {
			line += fmt.Sprintf(" You can also reach %s at %s.", resp.Agent.Name, resp.Agent.Phone)
		}
		return line

	case dispatch.ResponseAgentUnavailable, dispatch.ResponseNotFound, dispatch.ResponseMessage:
		return resp.Message
	}
	return resp.Message
}
