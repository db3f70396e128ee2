package pipeline_test

import (
	"testing"

	"github.com/atelier-vert/rapport/pkg/pipeline"
	"github.com/m-mizutani/gt"
)

func TestExtractMentions(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "two mentions separated by conjunction",
			text: "@Alice MARTIN et @Paul LECLERC ont fait la taille",
			want: []string{"Alice MARTIN", "Paul LECLERC"},
		},
		{
			name: "uppercase name",
			text: "Merci @ALICE MARTIN pour la plantation",
			want: []string{"ALICE MARTIN"},
		},
		{
			name: "hyphenated name",
			text: "@Jean-Pierre DUPONT est passé ce matin",
			want: []string{"Jean-Pierre DUPONT"},
		},
		{
			name: "three word name",
			text: "avec @Marie Louise BERNARD au jardin",
			want: []string{"Marie Louise BERNARD"},
		},
		{
			name: "match stops at lowercase word",
			text: "@Alice MARTIN a arrosé",
			want: []string{"Alice MARTIN"},
		},
		{
			name: "email address is not a mention",
			text: "contact: test@example.com",
			want: nil,
		},
		{
			name: "duplicates preserved",
			text: "@Paul LECLERC puis encore @Paul LECLERC",
			want: []string{"Paul LECLERC", "Paul LECLERC"},
		},
		{
			name: "no mentions",
			text: "Taille des rosiers terminée",
			want: nil,
		},
		{
			name: "empty text",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pipeline.ExtractMentions(tt.text)
			gt.Array(t, got).Length(len(tt.want))
			for i := range tt.want {
				gt.Value(t, got[i]).Equal(tt.want[i])
			}
		})
	}
}
