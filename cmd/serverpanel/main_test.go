package main

import (
	"reflect"
	"testing"
)

func TestRewriteDirectServerLookupArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"serverpanel"},
			want: []string{"serverpanel"},
		},
		{
			name: "direct id first token",
			in:   []string{"serverpanel", "3"},
			want: []string{"serverpanel", "servers", "show", "3"},
		},
		{
			name: "direct id after value flag",
			in:   []string{"serverpanel", "--dir", "./tmp", "3"},
			want: []string{"serverpanel", "--dir", "./tmp", "servers", "show", "3"},
		},
		{
			name: "direct id after equals flag",
			in:   []string{"serverpanel", "--dir=./tmp", "0"},
			want: []string{"serverpanel", "--dir=./tmp", "servers", "show", "0"},
		},
		{
			name: "direct id after bool flag",
			in:   []string{"serverpanel", "--pretty", "12"},
			want: []string{"serverpanel", "--pretty", "servers", "show", "12"},
		},
		{
			name: "glog verbosity value is not an id",
			in:   []string{"serverpanel", "-v", "2"},
			want: []string{"serverpanel", "-v", "2"},
		},
		{
			name: "normal subcommand not rewritten",
			in:   []string{"serverpanel", "servers", "show", "3"},
			want: []string{"serverpanel", "servers", "show", "3"},
		},
		{
			name: "unknown command not rewritten",
			in:   []string{"serverpanel", "wat"},
			want: []string{"serverpanel", "wat"},
		},
		{
			name: "after double dash not rewritten",
			in:   []string{"serverpanel", "--", "3"},
			want: []string{"serverpanel", "--", "3"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := rewriteDirectServerLookupArgs(append([]string{}, tt.in...))
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("rewrite(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
