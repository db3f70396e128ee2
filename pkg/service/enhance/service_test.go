package enhance_test

import (
	"context"
	"testing"
	"time"

	"github.com/atelier-vert/rapport/pkg/domain/model"
	"github.com/atelier-vert/rapport/pkg/domain/types"
	"github.com/atelier-vert/rapport/pkg/service/enhance"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gt"
)

type mockLLMSession struct {
	generateContentFn func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error)
}

func (s *mockLLMSession) GenerateContent(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
	if s.generateContentFn != nil {
		return s.generateContentFn(ctx, input...)
	}
	return &gollem.Response{Texts: []string{`{"description":"Nous avons taillé les rosiers.","title":"Taille des rosiers"}`}}, nil
}

func (s *mockLLMSession) GenerateStream(ctx context.Context, input ...gollem.Input) (<-chan *gollem.Response, error) {
	return nil, nil
}

func (s *mockLLMSession) History() (*gollem.History, error) { return nil, nil }

func (s *mockLLMSession) AppendHistory(*gollem.History) error { return nil }

func (s *mockLLMSession) CountToken(ctx context.Context, input ...gollem.Input) (int, error) {
	return 0, nil
}

type mockLLMClient struct {
	newSessionFn func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error)
}

func (c *mockLLMClient) NewSession(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
	if c.newSessionFn != nil {
		return c.newSessionFn(ctx, options...)
	}
	return &mockLLMSession{}, nil
}

func (c *mockLLMClient) GenerateEmbedding(ctx context.Context, dimension int, input []string) ([][]float64, error) {
	return nil, nil
}

func testIntervention() *model.Intervention {
	return &model.Intervention{
		Client:     types.ClientName("Domaine des Tilleuls"),
		AuthorName: "Alice Martin",
		Date:       time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		Provenance: types.DateExtracted,
		Text:       "taillé les rosiers\nramassé les feuilles",
		Participants: []model.TeamMember{
			{Key: "U001", Name: "Alice Martin"},
		},
	}
}

func TestEnhance(t *testing.T) {
	svc := enhance.New(&mockLLMClient{})

	description, title := svc.Enhance(context.Background(), testIntervention())
	gt.Value(t, description).Equal("Nous avons taillé les rosiers.")
	gt.Value(t, title).Equal("Taille des rosiers")
}

func TestEnhanceFallbackOnSessionError(t *testing.T) {
	svc := enhance.New(&mockLLMClient{
		newSessionFn: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
			return nil, goerr.New("quota exceeded")
		},
	})

	iv := testIntervention()
	description, title := svc.Enhance(context.Background(), iv)
	gt.Value(t, description).Equal(iv.Text)
	gt.Value(t, title).Equal("Intervention du 15/01")
}

func TestEnhanceFallbackOnMalformedJSON(t *testing.T) {
	svc := enhance.New(&mockLLMClient{
		newSessionFn: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
			return &mockLLMSession{
				generateContentFn: func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
					return &gollem.Response{Texts: []string{"pas du JSON"}}, nil
				},
			}, nil
		},
	})

	iv := testIntervention()
	description, title := svc.Enhance(context.Background(), iv)
	gt.Value(t, description).Equal(iv.Text)
	gt.Value(t, title).Equal("Intervention du 15/01")
}

func TestEnhanceFallbackOnEmptyFields(t *testing.T) {
	svc := enhance.New(&mockLLMClient{
		newSessionFn: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
			return &mockLLMSession{
				generateContentFn: func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
					return &gollem.Response{Texts: []string{`{"description":"","title":""}`}}, nil
				},
			}, nil
		},
	})

	iv := testIntervention()
	description, title := svc.Enhance(context.Background(), iv)
	gt.Value(t, description).Equal(iv.Text)
	gt.Value(t, title).Equal("Intervention du 15/01")
}

func TestEnhanceNilClient(t *testing.T) {
	svc := enhance.New(nil)

	iv := testIntervention()
	description, title := svc.Enhance(context.Background(), iv)
	gt.Value(t, description).Equal(iv.Text)
	gt.Value(t, title).Equal("Intervention du 15/01")
}

func TestEnhanceEmptyNotes(t *testing.T) {
	called := false
	svc := enhance.New(&mockLLMClient{
		newSessionFn: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
			called = true
			return &mockLLMSession{}, nil
		},
	})

	iv := testIntervention()
	iv.Text = "   "
	description, _ := svc.Enhance(context.Background(), iv)
	gt.Value(t, description).Equal(iv.Text)
	gt.B(t, called).False() // no LLM call for empty notes
}
