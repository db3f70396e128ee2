package pipeline_test

import (
	"testing"
	"time"

	"github.com/atelier-vert/rapport/pkg/domain/model/chat"
	"github.com/atelier-vert/rapport/pkg/pipeline"
	"github.com/m-mizutani/gt"
)

func TestFilterOffWholeMarkerClosesDay(t *testing.T) {
	paris := parisLoc()
	mk := pipeline.DefaultMarkers()
	base := time.Date(2025, 1, 15, 9, 0, 0, 0, paris)

	in := []*chat.Message{
		newMsg("U001", "Alice Martin", "hello", base),
		newMsg("U001", "Alice Martin", "(OFF)", base.Add(5*time.Minute)),
		newMsg("U001", "Alice Martin", "ignored", base.Add(10*time.Minute)),
	}

	out := pipeline.FilterOff(in, mk, paris)

	gt.Array(t, out).Length(1).Required()
	gt.Value(t, out[0].Text()).Equal("hello")
}

func TestFilterOffMidTextSplits(t *testing.T) {
	paris := parisLoc()
	mk := pipeline.DefaultMarkers()
	base := time.Date(2025, 1, 15, 9, 0, 0, 0, paris)

	in := []*chat.Message{
		newMsg("U001", "Alice Martin", "Taillé les rosiers (OFF) note perso", base, newImage("rosiers.jpg")),
		newMsg("U001", "Alice Martin", "plus tard", base.Add(time.Hour)),
	}

	out := pipeline.FilterOff(in, mk, paris)

	gt.Array(t, out).Length(1).Required()
	gt.Value(t, out[0].Text()).Equal("Taillé les rosiers ")
	// redaction applies to text, not to the media attached up to that point
	gt.Array(t, out[0].Attachments()).Length(1)
}

func TestFilterOffScopedToAuthorAndDay(t *testing.T) {
	paris := parisLoc()
	mk := pipeline.DefaultMarkers()
	base := time.Date(2025, 1, 15, 9, 0, 0, 0, paris)

	in := []*chat.Message{
		newMsg("U001", "Alice Martin", "(OFF)", base),
		newMsg("U002", "Paul Leclerc", "désherbage fait", base.Add(time.Minute)),
		newMsg("U001", "Alice Martin", "même jour, exclu", base.Add(2*time.Hour)),
		newMsg("U001", "Alice Martin", "lendemain, gardé", base.AddDate(0, 0, 1)),
	}

	out := pipeline.FilterOff(in, mk, paris)

	gt.Array(t, out).Length(2).Required()
	gt.Value(t, out[0].Text()).Equal("désherbage fait")
	gt.Value(t, out[1].Text()).Equal("lendemain, gardé")
}

func TestFilterOffDecoratedMarkerDropsMessage(t *testing.T) {
	paris := parisLoc()
	mk := pipeline.DefaultMarkers()
	base := time.Date(2025, 1, 15, 9, 0, 0, 0, paris)

	in := []*chat.Message{
		newMsg("U001", "Alice Martin", "... (off) !", base, newImage("perso.jpg")),
	}

	out := pipeline.FilterOff(in, mk, paris)
	gt.Array(t, out).Length(0)
}

func TestFilterOffNoMarkerPassesThrough(t *testing.T) {
	paris := parisLoc()
	mk := pipeline.DefaultMarkers()
	base := time.Date(2025, 1, 15, 9, 0, 0, 0, paris)

	in := []*chat.Message{
		newMsg("U001", "Alice Martin", "réunion officielle", base),
		newMsg("U001", "Alice Martin", "", base.Add(time.Minute), newImage("a.jpg")),
	}

	out := pipeline.FilterOff(in, mk, paris)
	gt.Array(t, out).Length(2)
}
