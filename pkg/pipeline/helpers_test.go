package pipeline_test

import (
	"fmt"
	"time"

	"github.com/atelier-vert/rapport/pkg/domain/model/chat"
	"github.com/atelier-vert/rapport/pkg/domain/types"
)

var msgSeq int

// newMsg builds a test message with a unique ID
func newMsg(user types.UserID, name, text string, at time.Time, attachments ...chat.Attachment) *chat.Message {
	msgSeq++
	return chat.NewMessageFromData(
		fmt.Sprintf("ts-%04d", msgSeq),
		types.ChannelID("C0TEST"),
		user, name, text, at, attachments,
	)
}

// newImage builds a jpeg attachment reference
func newImage(name string) chat.Attachment {
	return chat.NewAttachmentFromData("F-"+name, name, "image/jpeg", "https://files.example.com/"+name, "")
}

func parisLoc() *time.Location {
	loc, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		panic(err)
	}
	return loc
}
