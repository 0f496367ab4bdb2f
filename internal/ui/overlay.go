package ui

import (
	"time"

	"product-viewer/internal/commands"
)

// Overlay is everything drawn over the 3D view: the context menu, the always-present
// order button, the order toast and the optional parameter panel.
type Overlay struct {
	Engine *Engine
	Menu   *ContextMenu
	Toast  *Toast
	Panel  *ParamPanel
	Order  *Node

	frame []*Node
}

// NewOverlay wires the overlay widgets to one engine.
func NewOverlay(e *Engine, items []MenuItem, swatches []string, orderMessage string, orderDuration time.Duration) *Overlay {
	order := NewButton("order", "order-button", "Order", commands.PlaceOrder{})
	order.Bounds.Width, order.Bounds.Height = 120, 40
	return &Overlay{
		Engine: e,
		Menu:   NewContextMenu(e, items),
		Toast:  NewToast(orderMessage, orderDuration),
		Panel:  NewParamPanel(e, swatches),
		Order:  order,
	}
}

// Update advances the toast and rebuilds the node list for this frame.
func (o *Overlay) Update(now time.Time, params ParamValues, screenW, screenH int32) {
	o.Toast.Update(now)
	if o.Panel.Enabled {
		o.Panel.Update(params, float32(screenW))
	}
	o.frame = append(o.frame[:0], o.Order)
	o.frame = o.Toast.AppendNodes(o.frame)
	o.frame = o.Panel.AppendNodes(o.frame)
	o.frame = o.Menu.AppendNodes(o.frame)
	o.Engine.SetNodes(o.frame)
	o.Engine.Layout(screenW, screenH)
}

// Click routes a click to the topmost widget. It returns the command to dispatch, if any,
// and whether the overlay consumed the click (so it must not reach the 3D scene).
func (o *Overlay) Click(x, y float32) (commands.Command, bool) {
	if cmd, ok := o.Menu.Click(x, y); ok {
		return cmd, true
	}
	if o.Menu.Contains(x, y) {
		return nil, true
	}
	if cmd, ok := o.Panel.Click(x, y); ok {
		return cmd, true
	}
	if o.Panel.Contains(x, y) {
		return nil, true
	}
	if o.Order.Contains(x, y) {
		return o.Order.Command, true
	}
	return nil, false
}

// Draw draws the nodes collected by the last Update.
func (o *Overlay) Draw() {
	o.Engine.Draw()
}
