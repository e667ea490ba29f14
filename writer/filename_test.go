/*
Copyright 2026 The Simflow authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package writer

import "testing"

func TestFilename(t *testing.T) {
	rt := RuntimeVersion{Major: 3, Minor: 11}

	got := Filename("demo", "1.0", rt)
	if want := "demo-1.0-py3.11.egg"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}

	// Identical inputs yield identical strings.
	if again := Filename("demo", "1.0", rt); again != got {
		t.Fatalf("filename derivation not stable: %q != %q", again, got)
	}
}

func TestParseRuntimeVersion(t *testing.T) {
	tests := []struct {
		input     string
		want      RuntimeVersion
		expectErr bool
	}{
		{input: "3.11", want: RuntimeVersion{Major: 3, Minor: 11}},
		{input: "2.6", want: RuntimeVersion{Major: 2, Minor: 6}},
		{input: "3", expectErr: true},
		{input: "3.11.4", expectErr: true},
		{input: "three.eleven", expectErr: true},
		{input: "-1.2", expectErr: true},
		{input: "", expectErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRuntimeVersion(tt.input)
			if tt.expectErr {
				if err == nil {
					t.Fatalf("expected error for %q, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			if got.String() != tt.input {
				t.Fatalf("round trip mismatch: %q != %q", got.String(), tt.input)
			}
		})
	}
}
