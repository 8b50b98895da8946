package keyboard_test

import (
	"strings"
	"testing"

	"github.com/Proton-105/warung-bot/internal/bot/keyboard"
)

func TestEncodeCallback(t *testing.T) {
	tests := []struct {
		name      string
		unique    string
		data      string
		want      string
		wantError bool
	}{
		{
			name:   "with data",
			unique: "all_orders",
			data:   "2",
			want:   "all_orders:2",
		},
		{
			name:   "without data",
			unique: "catalog",
			data:   "",
			want:   "catalog",
		},
		{
			name:      "payload exceeds limit",
			unique:    "remove_from_cart",
			data:      strings.Repeat("9", keyboard.CallbackDataLimitBytes),
			wantError: true,
		},
		{
			name:      "exceeds limit",
			unique:    strings.Repeat("x", keyboard.CallbackDataLimitBytes+1),
			data:      "",
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := keyboard.EncodeCallback(tt.unique, tt.data)
			if tt.wantError {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got != tt.want {
				t.Errorf("EncodeCallback() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecodeCallback(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantUnique string
		wantData   string
		wantErr    bool
	}{
		{
			name:       "unique and data",
			input:      "view_order:3",
			wantUnique: "view_order",
			wantData:   "3",
		},
		{
			name:       "only unique",
			input:      "checkout",
			wantUnique: "checkout",
			wantData:   "",
		},
		{
			name:       "multiple separators",
			input:      "update_order_status:12:shipped",
			wantUnique: "update_order_status",
			wantData:   "12:shipped",
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unique, data, err := keyboard.DecodeCallback(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if unique != tt.wantUnique || data != tt.wantData {
				t.Errorf("DecodeCallback() = (%q, %q), want (%q, %q)", unique, data, tt.wantUnique, tt.wantData)
			}
		})
	}
}
