package main

import (
	"errors"
	"reflect"
	"testing"
)

func TestResolveRequestType(t *testing.T) {
	tests := map[string]string{
		"close":             "_NET_CLOSE_WINDOW",
		"Minimize":          "WM_CHANGE_STATE",
		"_NET_WM_STATE":     "_NET_WM_STATE",
		"_CUSTOM_EXTENSION": "_CUSTOM_EXTENSION",
	}
	for in, want := range tests {
		if got := resolveRequestType(in); got != want {
			t.Errorf("resolveRequestType(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseRequestWords(t *testing.T) {
	atoms := map[string]uint32{"_NET_WM_STATE_FULLSCREEN": 412}
	intern := func(name string) (uint32, error) {
		if v, ok := atoms[name]; ok {
			return v, nil
		}
		return 0, errors.New("no such atom")
	}

	tests := []struct {
		name    string
		args    []string
		want    []uint32
		wantErr bool
	}{
		{"empty", nil, []uint32{}, false},
		{"decimal and hex", []string{"1", "0x10"}, []uint32{1, 16}, false},
		{"negative", []string{"-1", "-10"}, []uint32{0xFFFFFFFF, 0xFFFFFFF6}, false},
		{"atom name", []string{"1", "_NET_WM_STATE_FULLSCREEN", "0"}, []uint32{1, 412, 0}, false},
		{"unknown atom", []string{"_MISSING"}, nil, true},
		{"too large", []string{"0x100000000"}, nil, true},
		{"too many", []string{"1", "2", "3", "4", "5", "6"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseRequestWords(tt.args, intern)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseRequestWords(%v) = %v, want error", tt.args, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseRequestWords(%v) error: %v", tt.args, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("parseRequestWords(%v) = %v, want %v", tt.args, got, tt.want)
			}
		})
	}
}
