package board

import (
	"context"
	"fmt"
	"io"
)

// Renderer describes the template renderer contract needed by the
// controller.
type Renderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
}

// ControllerOptions wires the collaborators for board page rendering.
type ControllerOptions struct {
	Service  *Service
	Renderer Renderer
	Charts   *ChartRenderer
}

// Controller turns board state into the HTML page transports serve. Chart
// widgets are rendered server-side; the page itself goes through the
// embedded templates.
type Controller struct {
	opts ControllerOptions
}

// NewController builds a controller with a default chart renderer.
func NewController(opts ControllerOptions) *Controller {
	if opts.Charts == nil {
		opts.Charts = NewChartRenderer()
	}
	return &Controller{opts: opts}
}

// BoardView is the template model for the full board page.
type BoardView struct {
	Categories []CategoryView
}

// CategoryView pairs a category with its resolved, rendered widgets.
type CategoryView struct {
	Category Category
	Widgets  []WidgetView
}

// WidgetView is a widget plus its rendered HTML.
type WidgetView struct {
	Widget Widget
	HTML   string
}

// BoardView resolves the current snapshot into a renderable view model.
// Widget ids with no backing record are skipped rather than failing the
// whole page.
func (c *Controller) BoardView(ctx context.Context) (BoardView, error) {
	if c.opts.Service == nil {
		return BoardView{}, fmt.Errorf("board: controller requires a service")
	}
	snap, err := c.opts.Service.Snapshot(ctx)
	if err != nil {
		return BoardView{}, err
	}
	view := BoardView{Categories: make([]CategoryView, 0, len(snap.Categories))}
	for _, cat := range snap.Categories {
		cv := CategoryView{Category: cat}
		for _, widgetID := range cat.Widgets {
			w, ok := snap.Widgets[widgetID]
			if !ok {
				continue
			}
			html, err := c.opts.Charts.RenderWidget(w)
			if err != nil {
				return BoardView{}, fmt.Errorf("board: render widget %s: %w", w.ID, err)
			}
			cv.Widgets = append(cv.Widgets, WidgetView{Widget: w, HTML: html})
		}
		view.Categories = append(view.Categories, cv)
	}
	return view, nil
}

// RenderBoard writes the full board page to out.
func (c *Controller) RenderBoard(ctx context.Context, out io.Writer) error {
	if c.opts.Renderer == nil {
		return fmt.Errorf("board: controller requires a renderer")
	}
	view, err := c.BoardView(ctx)
	if err != nil {
		return err
	}
	_, err = c.opts.Renderer.Render("board", view, out)
	return err
}
