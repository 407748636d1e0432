package intent

import "testing"

func newTestClassifier(t *testing.T) *Classifier {
	t.Helper()
	c, err := NewClassifier(DefaultCorpus())
	if err != nil {
		t.Fatalf("NewClassifier: %v", err)
	}
	return c
}

func TestNewClassifier_EmptyCorpus(t *testing.T) {
	_, err := NewClassifier(nil)
	if err == nil {
		t.Fatal("expected error for empty corpus")
	}
}

func TestNewClassifier_ExampleWithNoTokens(t *testing.T) {
	_, err := NewClassifier([]Example{{Text: "a !", Label: LabelTrack}})
	if err == nil {
		t.Fatal("expected error for example with no tokens")
	}
}

func TestClassifier_Labels(t *testing.T) {
	c := newTestClassifier(t)
	labels := c.Labels()
	want := []Label{LabelTrack, LabelCancel, LabelAgent}
	if len(labels) != len(want) {
		t.Fatalf("Labels() = %v, want %v", labels, want)
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Errorf("Labels()[%d] = %q, want %q", i, labels[i], want[i])
		}
	}
}

// Every training sentence must classify as its own label.
func TestClassifier_TrainingExamplesRoundTrip(t *testing.T) {
	c := newTestClassifier(t)
	for _, ex := range DefaultCorpus() {
		if got := c.Classify(ex.Text); got != ex.Label {
			t.Errorf("Classify(%q) = %q, want %q", ex.Text, got, ex.Label)
		}
	}
}

func TestClassifier_Classify(t *testing.T) {
	c := newTestClassifier(t)

	tests := []struct {
		text string
		want Label
	}{
		{"where is my order", LabelTrack},
		{"I want to cancel", LabelCancel},
		{"connect me to support", LabelAgent},
		{"Where Is My Order?", LabelTrack}, // case-insensitive
		{"please cancel my order O42", LabelCancel},
	}
	for _, tt := range tests {
		if got := c.Classify(tt.text); got != tt.want {
			t.Errorf("Classify(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

// Unrelated text still gets one of the trained labels: the classifier is
// closed-world on purpose.
func TestClassifier_UnrelatedTextStillLabeled(t *testing.T) {
	c := newTestClassifier(t)
	got := c.Classify("the quick brown fox")
	switch got {
	case LabelTrack, LabelCancel, LabelAgent:
	default:
		t.Errorf("Classify returned unknown label %q", got)
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"Track my ORDER", []string{"track", "my", "order"}},
		{"i want to cancel!", []string{"want", "to", "cancel"}},
		{"", nil},
		{"a i !", nil},
	}
	for _, tt := range tests {
		got := tokenize(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("tokenize(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range tt.want {
			if got[i] != tt.want[i] {
				t.Errorf("tokenize(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}
