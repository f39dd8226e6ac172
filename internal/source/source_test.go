package source

import "testing"

func TestParseLocation(t *testing.T) {
	tests := []struct {
		input string
		want  Location
	}{
		{"data.bin", Location{Scheme: SchemeFile, Key: "data.bin"}},
		{"/tmp/corpus/enwik8", Location{Scheme: SchemeFile, Key: "/tmp/corpus/enwik8"}},
		{"gs://bucket/corpus/enwik8", Location{Scheme: SchemeGCS, Bucket: "bucket", Key: "corpus/enwik8"}},
		{"s3://bucket/enwik8", Location{Scheme: SchemeS3, Bucket: "bucket", Key: "enwik8"}},
		{"https://example.com/enwik8.zst", Location{Scheme: SchemeHTTP, Key: "https://example.com/enwik8.zst"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLocation(tt.input)
			if err != nil {
				t.Fatalf("ParseLocation() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseLocation() = %+v, want %+v", got, tt.want)
			}
			if got.String() != tt.input {
				t.Errorf("String() = %q, want %q", got.String(), tt.input)
			}
		})
	}
}

func TestParseLocation_Invalid(t *testing.T) {
	for _, input := range []string{"", "gs://", "gs://bucket", "s3://bucket/", "s3:///key"} {
		if _, err := ParseLocation(input); err == nil {
			t.Errorf("ParseLocation(%q) expected error, got nil", input)
		}
	}
}
