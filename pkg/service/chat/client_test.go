package chat_test

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/atelier-vert/rapport/pkg/domain/model/chat"
	"github.com/atelier-vert/rapport/pkg/domain/types"
	svc "github.com/atelier-vert/rapport/pkg/service/chat"
	"github.com/m-mizutani/gt"
	"github.com/slack-go/slack"
)

type mockAPI struct {
	historyFn  func(ctx context.Context, params *slack.GetConversationHistoryParameters) (*slack.GetConversationHistoryResponse, error)
	userInfoFn func(ctx context.Context, user string) (*slack.User, error)
	fileFn     func(ctx context.Context, downloadURL string, writer io.Writer) error

	userInfoCalls int
}

func (m *mockAPI) GetConversationHistoryContext(ctx context.Context, params *slack.GetConversationHistoryParameters) (*slack.GetConversationHistoryResponse, error) {
	return m.historyFn(ctx, params)
}

func (m *mockAPI) GetUserInfoContext(ctx context.Context, user string) (*slack.User, error) {
	m.userInfoCalls++
	if m.userInfoFn != nil {
		return m.userInfoFn(ctx, user)
	}
	return &slack.User{ID: user, Name: "handle", RealName: "Alice Martin"}, nil
}

func (m *mockAPI) GetFileContext(ctx context.Context, downloadURL string, writer io.Writer) error {
	if m.fileFn != nil {
		return m.fileFn(ctx, downloadURL, writer)
	}
	return nil
}

func historyMsg(ts, user, text string) slack.Message {
	return slack.Message{Msg: slack.Msg{
		Timestamp: ts,
		User:      user,
		Text:      text,
	}}
}

func TestFetchMessagesPagination(t *testing.T) {
	page := 0
	mock := &mockAPI{
		historyFn: func(ctx context.Context, params *slack.GetConversationHistoryParameters) (*slack.GetConversationHistoryResponse, error) {
			page++
			switch page {
			case 1:
				gt.Value(t, params.Cursor).Equal("")
				resp := &slack.GetConversationHistoryResponse{
					HasMore:  true,
					Messages: []slack.Message{historyMsg("1700000200.000100", "U001", "deuxième")},
				}
				resp.ResponseMetaData.NextCursor = "cur1"
				return resp, nil
			default:
				gt.Value(t, params.Cursor).Equal("cur1")
				return &slack.GetConversationHistoryResponse{
					Messages: []slack.Message{historyMsg("1700000100.000100", "U001", "première")},
				}, nil
			}
		},
	}

	client := gt.R1(svc.New("", svc.WithAPI(mock))).NoError(t)

	msgs, err := client.FetchMessages(context.Background(), types.ChannelID("C012345"),
		time.Unix(1700000000, 0), time.Unix(1700001000, 0))
	gt.NoError(t, err)
	gt.Array(t, msgs).Length(2).Required()

	// oldest first regardless of API ordering
	gt.Value(t, msgs[0].Text()).Equal("première")
	gt.Value(t, msgs[1].Text()).Equal("deuxième")
	gt.Value(t, msgs[0].UserName()).Equal("Alice Martin")
	gt.Value(t, mock.userInfoCalls).Equal(1) // cached for the second message
}

func TestFetchMessagesSkipsSystemEvents(t *testing.T) {
	mock := &mockAPI{
		historyFn: func(ctx context.Context, params *slack.GetConversationHistoryParameters) (*slack.GetConversationHistoryResponse, error) {
			join := historyMsg("1700000300.000000", "U002", "a rejoint le canal")
			join.SubType = "channel_join"
			share := historyMsg("1700000400.000000", "U002", "photos du chantier")
			share.SubType = "file_share"
			noUser := historyMsg("1700000500.000000", "", "bot notice")
			return &slack.GetConversationHistoryResponse{
				Messages: []slack.Message{join, share, noUser},
			}, nil
		},
	}

	client := gt.R1(svc.New("", svc.WithAPI(mock))).NoError(t)

	msgs, err := client.FetchMessages(context.Background(), types.ChannelID("C012345"),
		time.Unix(1700000000, 0), time.Unix(1700001000, 0))
	gt.NoError(t, err)
	gt.Array(t, msgs).Length(1).Required()
	gt.Value(t, msgs[0].Text()).Equal("photos du chantier")
}

func TestFetchMessagesInvalidChannel(t *testing.T) {
	client := gt.R1(svc.New("", svc.WithAPI(&mockAPI{}))).NoError(t)

	_, err := client.FetchMessages(context.Background(), types.ChannelID(""),
		time.Unix(0, 0), time.Unix(1, 0))
	gt.Error(t, err)
}

func TestFetchMessagesNameResolutionFailure(t *testing.T) {
	mock := &mockAPI{
		historyFn: func(ctx context.Context, params *slack.GetConversationHistoryParameters) (*slack.GetConversationHistoryResponse, error) {
			return &slack.GetConversationHistoryResponse{
				Messages: []slack.Message{historyMsg("1700000100.000000", "U404", "bonjour")},
			}, nil
		},
		userInfoFn: func(ctx context.Context, user string) (*slack.User, error) {
			return nil, io.EOF
		},
	}

	client := gt.R1(svc.New("", svc.WithAPI(mock))).NoError(t)

	msgs, err := client.FetchMessages(context.Background(), types.ChannelID("C012345"),
		time.Unix(0, 0), time.Unix(1700001000, 0))
	gt.NoError(t, err)
	gt.Array(t, msgs).Length(1).Required()
	gt.Value(t, msgs[0].UserName()).Equal("U404") // falls back to the raw ID
}

func TestDownload(t *testing.T) {
	mock := &mockAPI{
		fileFn: func(ctx context.Context, downloadURL string, writer io.Writer) error {
			gt.Value(t, downloadURL).Equal("https://files.example.com/photo.jpg")
			_, err := writer.Write([]byte("jpegdata"))
			return err
		},
	}

	client := gt.R1(svc.New("", svc.WithAPI(mock))).NoError(t)

	att := chat.NewAttachmentFromData("F001", "photo.jpg", "image/jpeg",
		"https://files.example.com/photo.jpg", "")
	var buf bytes.Buffer
	gt.NoError(t, client.Download(context.Background(), att, &buf))
	gt.Value(t, buf.String()).Equal("jpegdata")

	empty := chat.NewAttachmentFromData("F002", "x.jpg", "image/jpeg", "", "")
	gt.Error(t, client.Download(context.Background(), empty, &buf))
}

func TestNewRequiresToken(t *testing.T) {
	_, err := svc.New("")
	gt.Error(t, err)
}

func TestSlackTimestamp(t *testing.T) {
	ts := svc.SlackTimestamp(time.Unix(1700000123, 456000))
	gt.Value(t, ts).Equal("1700000123.000456")
}
