// Package prompt turns a resolved action phrase and a style selection into the
// final Chinese image-generation prompt.
package prompt

import (
	"fmt"

	"fitvision/internal/style"
)

// TechnicalSuffix is the fixed studio preset appended to every composed
// prompt. It is constant by contract and never derived from configuration.
const TechnicalSuffix = "f/1.8, 8k resolution, photorealistic, real sweat texture. " +
	"**Center-weighted composition, subject in middle, ample negative space for cropping.** --ar 16:9"

// Compose builds the full prompt for one course action. It is pure and
// deterministic: the same action and config always yield byte-identical
// output.
func Compose(action string, cfg style.Config) string {
	return fmt.Sprintf("%s，%s%s健身教练%s。%s。%s。%s。背景是%s。%s，%s",
		cfg.Shot.Phrase(),
		cfg.Nationality.Phrase(),
		cfg.Gender.Phrase(),
		action,
		cfg.ArtDirection.Phrase(),
		cfg.Atmosphere.Phrase(),
		cfg.Light.Phrase(),
		cfg.Scene.Phrase(),
		cfg.Camera.Phrase(),
		TechnicalSuffix,
	)
}
