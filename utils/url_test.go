package utils

import "testing"

func TestNormalizeStreamURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{
			name: "plain url passes through",
			url:  "http://example.com/video.mp4",
			want: "http://example.com/video.mp4",
		},
		{
			name: "https with query kept",
			url:  "https://cdn.example.com/stream.ts?token=abc",
			want: "https://cdn.example.com/stream.ts?token=abc",
		},
		{
			name: "spaces in path are encoded",
			url:  "http://example.com/path with spaces/file name.mp4",
			want: "http://example.com/path%20with%20spaces/file%20name.mp4",
		},
		{
			name: "spaces in query are encoded",
			url:  "http://example.com/v?title=fight club",
			want: "http://example.com/v?title=fight%20club",
		},
		{
			name: "uppercase scheme is lowercased",
			url:  "HTTP://example.com/file",
			want: "http://example.com/file",
		},
		{name: "file scheme refused", url: "file:///etc/passwd", wantErr: true},
		{name: "ftp scheme refused", url: "ftp://host/payload", wantErr: true},
		{name: "data scheme refused", url: "data:text/plain,hello", wantErr: true},
		{name: "smb scheme refused", url: "smb://share/file", wantErr: true},
		{name: "empty refused", url: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeStreamURL(tt.url)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("NormalizeStreamURL(%q) expected error, got %q", tt.url, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("NormalizeStreamURL(%q) unexpected error: %v", tt.url, err)
			}
			if got != tt.want {
				t.Errorf("NormalizeStreamURL(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}
