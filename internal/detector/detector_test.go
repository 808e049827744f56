package detector

import (
	"testing"
)

func TestDetector_DetectISO(t *testing.T) {
	d := New()

	tests := []struct {
		name     string
		text     string
		wantCode string
		wantOK   bool
	}{
		{
			name:     "empty text",
			text:     "",
			wantCode: "",
			wantOK:   false,
		},
		{
			name:     "english request",
			text:     "A bedtime story about a shy turtle who learns to make friends.",
			wantCode: "en",
			wantOK:   true,
		},
		{
			name:     "ukrainian request",
			text:     "Казка на ніч про сором'язливу черепаху, яка вчиться дружити.",
			wantCode: "uk",
			wantOK:   true,
		},
		{
			name:     "german request",
			text:     "Eine Gutenachtgeschichte über eine schüchterne Schildkröte.",
			wantCode: "de",
			wantOK:   true,
		},
		{
			name:     "spanish request",
			text:     "Un cuento para dormir sobre una tortuga tímida que hace amigos.",
			wantCode: "es",
			wantOK:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, ok := d.DetectISO(tt.text)
			if ok != tt.wantOK {
				t.Errorf("DetectISO(%q) ok = %v, want %v", tt.text, ok, tt.wantOK)
				return
			}
			if code != tt.wantCode {
				t.Errorf("DetectISO(%q) = %q, want %q", tt.text, code, tt.wantCode)
			}
		})
	}
}
