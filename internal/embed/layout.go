package embed

import (
	"strconv"

	"github.com/GregMSThompson/chat-widget/internal/models"
)

// Placement holds CSS values for a fixed-position element. The side that is
// not anchored is "auto".
type Placement struct {
	Left   string `json:"left"`
	Right  string `json:"right"`
	Bottom string `json:"bottom"`
}

type Layout struct {
	Bubble       Placement `json:"bubble"`
	Panel        Placement `json:"panel"`
	BubbleRadius string    `json:"bubbleRadius"`
}

// ComputeLayout places the bubble and the panel above it. bottom-left anchors
// to the left edge; every other position, custom included, anchors right.
func ComputeLayout(b models.Bubble) Layout {
	x := px(b.OffsetX)
	left, right := "auto", x
	if b.Position == models.PositionBottomLeft {
		left, right = x, "auto"
	}

	radius := "18px"
	if b.Shape == models.ShapeCircle {
		radius = "999px"
	}

	return Layout{
		Bubble:       Placement{Left: left, Right: right, Bottom: px(b.OffsetY)},
		Panel:        Placement{Left: left, Right: right, Bottom: px(b.OffsetY + b.Size.Height + PanelGap)},
		BubbleRadius: radius,
	}
}

func px(n int) string {
	return strconv.Itoa(n) + "px"
}
