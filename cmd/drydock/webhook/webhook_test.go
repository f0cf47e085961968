package webhook

import "testing"

func TestSplitProject(t *testing.T) {
	cases := []struct {
		in          string
		owner, name string
		wantErr     bool
	}{
		{in: "bob/gitea", owner: "bob", name: "gitea"},
		{in: "bob/gitea/extra", wantErr: true},
		{in: "bob", wantErr: true},
		{in: "/gitea", wantErr: true},
		{in: "bob/", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range cases {
		owner, name, err := splitProject(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("splitProject(%q) expected an error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("splitProject(%q) = %v", tc.in, err)
			continue
		}
		if owner != tc.owner || name != tc.name {
			t.Errorf("splitProject(%q) = %q, %q, want %q, %q", tc.in, owner, name, tc.owner, tc.name)
		}
	}
}
