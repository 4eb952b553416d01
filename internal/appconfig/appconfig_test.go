package appconfig

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestDefaultRequiredFields(t *testing.T) {
	cfg := Default()

	if cfg.PageTitle == "" {
		t.Error("PageTitle should not be empty")
	}
	if cfg.PageDescription == "" {
		t.Error("PageDescription should not be empty")
	}
	if cfg.CompanyName == "" {
		t.Error("CompanyName should not be empty")
	}
	if cfg.Logo == "" {
		t.Error("Logo should not be empty")
	}
	if cfg.StartButtonText != "Order with Ember" {
		t.Errorf("StartButtonText = %q, want %q", cfg.StartButtonText, "Order with Ember")
	}
	if !cfg.SupportsChatInput {
		t.Error("chat input should be enabled by default")
	}
	if !cfg.IsPreConnectBufferEnabled {
		t.Error("pre-connect buffer should be enabled by default")
	}
}

func TestDefaultOptionalFieldsAbsent(t *testing.T) {
	cfg := Default()

	if cfg.Accent != nil {
		t.Errorf("Accent should be absent, got %q", *cfg.Accent)
	}
	if cfg.LogoDark != nil {
		t.Errorf("LogoDark should be absent, got %q", *cfg.LogoDark)
	}
	if cfg.AccentDark != nil {
		t.Errorf("AccentDark should be absent, got %q", *cfg.AccentDark)
	}
	if cfg.SandboxID != nil {
		t.Errorf("SandboxID should be absent, got %q", *cfg.SandboxID)
	}
	if cfg.AgentName != nil {
		t.Errorf("AgentName should be absent, got %q", *cfg.AgentName)
	}
}

func TestJSONOmitsAbsentOptionals(t *testing.T) {
	data, err := json.Marshal(Default())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	for _, key := range []string{"accent", "logo_dark", "accent_dark", "sandbox_id", "agent_name"} {
		if strings.Contains(string(data), `"`+key+`"`) {
			t.Errorf("absent optional %q should not appear in JSON: %s", key, data)
		}
	}
	if !strings.Contains(string(data), `"start_button_text":"Order with Ember"`) {
		t.Errorf("required field missing from JSON: %s", data)
	}
}

func TestJSONRoundTripKeepsAbsence(t *testing.T) {
	cfg := Default()
	cfg.Accent = String("#fe640b")

	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var back AppConfig
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if back.Accent == nil || *back.Accent != "#fe640b" {
		t.Error("configured accent lost in round trip")
	}
	if back.SandboxID != nil {
		t.Error("absent sandbox id became present in round trip")
	}
}
