package routepath

import "testing"

func TestRouteConstants(t *testing.T) {
	t.Parallel()

	if Root != "/" || Login != "/login" || Welcome != "/welcome" || Health != "/api/health" {
		t.Fatalf("unexpected route constants: %q %q %q %q", Root, Login, Welcome, Health)
	}
}

func TestRouteBuilders(t *testing.T) {
	t.Parallel()

	if got := WelcomeForm("abc"); got != "/welcome/forms/abc" {
		t.Fatalf("WelcomeForm() = %q", got)
	}
	if got := WelcomeWithForm("abc"); got != "/welcome?form=abc" {
		t.Fatalf("WelcomeWithForm() = %q", got)
	}
	if got := LoginFrom("/welcome/a b"); got != "/?from=%2Fwelcome%2Fa%20b" {
		t.Fatalf("LoginFrom() = %q", got)
	}
}
