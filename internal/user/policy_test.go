package user

import "testing"

func TestPolicyIsAdminEmail(t *testing.T) {
	p := NewPolicy([]string{"admin@mess.example", " Warden@mess.example "})

	tests := []struct {
		email string
		want  bool
	}{
		{"admin@mess.example", true},
		{"ADMIN@MESS.EXAMPLE", true},
		{"warden@mess.example", true},
		{"student@mess.example", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := p.IsAdminEmail(tt.email); got != tt.want {
			t.Errorf("IsAdminEmail(%q) = %v, want %v", tt.email, got, tt.want)
		}
	}
}

func TestPolicyRoleFor(t *testing.T) {
	p := NewPolicy([]string{"admin@mess.example"})

	tests := []struct {
		name       string
		email      string
		storedRole string
		want       string
	}{
		{"configured admin", "admin@mess.example", RoleUser, RoleAdmin},
		{"stored admin role", "other@mess.example", RoleAdmin, RoleAdmin},
		{"plain user", "other@mess.example", RoleUser, RoleUser},
		{"unknown role treated as user", "other@mess.example", "staff", RoleUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.RoleFor(tt.email, tt.storedRole); got != tt.want {
				t.Errorf("RoleFor(%q, %q) = %q, want %q", tt.email, tt.storedRole, got, tt.want)
			}
		})
	}
}
