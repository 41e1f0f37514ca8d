package style

import "testing"

func TestPhraseLookupIsTotal(t *testing.T) {
	opts := AllOptions()

	for _, o := range opts.Shot {
		if Shot(o.Value).Phrase() == "" {
			t.Errorf("shot %q has empty phrase", o.Value)
		}
	}
	for _, o := range opts.Atmosphere {
		if Atmosphere(o.Value).Phrase() == "" {
			t.Errorf("atmosphere %q has empty phrase", o.Value)
		}
	}
	for _, o := range opts.Light {
		if Light(o.Value).Phrase() == "" {
			t.Errorf("light %q has empty phrase", o.Value)
		}
	}
	for _, o := range opts.Camera {
		if Camera(o.Value).Phrase() == "" {
			t.Errorf("camera %q has empty phrase", o.Value)
		}
	}
	for _, o := range opts.Gender {
		if Gender(o.Value).Phrase() == "" {
			t.Errorf("gender %q has empty phrase", o.Value)
		}
	}
	for _, o := range opts.Nationality {
		if Nationality(o.Value).Phrase() == "" {
			t.Errorf("nationality %q has empty phrase", o.Value)
		}
	}
	for _, o := range opts.ArtDirection {
		if ArtDirection(o.Value).Phrase() == "" {
			t.Errorf("artDirection %q has empty phrase", o.Value)
		}
	}
	for _, o := range opts.Scene {
		if Scene(o.Value).Phrase() == "" {
			t.Errorf("scene %q has empty phrase", o.Value)
		}
	}
}

func TestPhrasePanicsOnUndeclaredValue(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for undeclared shot value")
		}
	}()
	_ = Shot("Drone shot").Phrase()
}

func TestDefaultConfigValidates(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}
}

func TestValidateRejectsUnknownMember(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scene = "Moon Base"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown scene")
	}
}
