package plans

import (
	"testing"

	"github.com/google/uuid"
)

func TestSelectOp(t *testing.T) {
	generationID := uuid.New()
	text := "plan text"

	tests := []struct {
		name string
		in   CreateOrAcceptInput
		want createOp
	}{
		{
			name: "generation id only accepts the proposal",
			in:   CreateOrAcceptInput{GenerationID: &generationID},
			want: opAcceptAI,
		},
		{
			name: "generation id with text accepts as hybrid",
			in:   CreateOrAcceptInput{GenerationID: &generationID, PlanText: &text},
			want: opCreateHybrid,
		},
		{
			name: "text only creates a manual plan",
			in:   CreateOrAcceptInput{PlanText: &text},
			want: opCreateManual,
		},
		{
			name: "neither field is invalid",
			in:   CreateOrAcceptInput{},
			want: opInvalid,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := selectOp(tt.in); got != tt.want {
				t.Fatalf("selectOp = %v, want %v", got, tt.want)
			}
		})
	}
}
