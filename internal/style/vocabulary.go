// Package style holds the closed visual-style vocabulary: every enumerated
// option category the composer understands, its UI labels, and the Chinese
// phrase each value expands to inside a composed prompt.
//
// Phrase lookup is total over the declared members. Looking up a value outside
// its enum is a programming error and panics; it is never a runtime condition
// to recover from.
package style

import "fmt"

// Shot is the framing of the subject.
type Shot string

const (
	ShotWide    Shot = "Wide shot"
	ShotMedium  Shot = "Medium shot"
	ShotCloseUp Shot = "Close-up"
)

// Atmosphere is the overall mood of the frame.
type Atmosphere string

const (
	AtmosphereDarkLuxury Atmosphere = "Dark Luxury"
	AtmosphereBright     Atmosphere = "Bright & Energetic"
	AtmosphereNatureZen  Atmosphere = "Nature & Zen"
	AtmosphereCyberpunk  Atmosphere = "Cyberpunk"
)

// Light is the lighting setup.
type Light string

const (
	LightWarmRim       Light = "Warm rim light"
	LightCinematicCool Light = "Cinematic cool lighting"
	LightNeon          Light = "Neon lights"
	LightSoftNatural   Light = "Soft natural light"
)

// Camera is the simulated capture hardware.
type Camera string

const (
	CameraSonyA7R4    Camera = "Sony A7R IV"
	CameraKodakPortra Camera = "Kodak Portra 400"
	CameraGoPro       Camera = "GoPro Hero 10"
)

// Gender of the depicted coach.
type Gender string

const (
	GenderFemale Gender = "Female"
	GenderMale   Gender = "Male"
	GenderMixed  Gender = "Mixed"
)

// Nationality of the depicted coach.
type Nationality string

const (
	NationalityAsian     Nationality = "Asian"
	NationalityCaucasian Nationality = "Caucasian"
	NationalityBlack     Nationality = "Black"
	NationalityDiverse   Nationality = "Diverse"
)

// ArtDirection is the editorial style the frame imitates.
type ArtDirection string

const (
	ArtNetflixDocumentary ArtDirection = "Netflix Documentary"
	ArtNikeCommercial     ArtDirection = "Nike Commercial"
	ArtLululemon          ArtDirection = "Lululemon Lifestyle"
	ArtCrossFit           ArtDirection = "CrossFit Industrial"
	ArtVogue              ArtDirection = "Vogue Editorial"
)

// Scene is the background environment.
type Scene string

const (
	SceneIndustrialWarehouse Scene = "Dark Industrial Warehouse"
	SceneWellnessStudio      Scene = "Luxury Wellness Studio"
	SceneCyberNeonGym        Scene = "Cyber Neon Gym"
	SceneZenNature           Scene = "Zen Nature Space"
	SceneUrbanRooftop        Scene = "Urban Rooftop"
	SceneScandiHome          Scene = "Sunlit Scandi Home"
)

// Config is one complete style selection. Every field always holds a declared
// enum member; partially filled configs are rejected by Validate before they
// reach the composer.
type Config struct {
	Shot         Shot         `json:"shot"`
	Atmosphere   Atmosphere   `json:"atmosphere"`
	Light        Light        `json:"light"`
	Camera       Camera       `json:"camera"`
	Gender       Gender       `json:"gender"`
	Nationality  Nationality  `json:"nationality"`
	ArtDirection ArtDirection `json:"artDirection"`
	Scene        Scene        `json:"scene"`
}

// DefaultConfig returns the studio default selection.
func DefaultConfig() Config {
	return Config{
		Shot:         ShotWide,
		Atmosphere:   AtmosphereDarkLuxury,
		Light:        LightWarmRim,
		Camera:       CameraSonyA7R4,
		Gender:       GenderFemale,
		Nationality:  NationalityAsian,
		ArtDirection: ArtNetflixDocumentary,
		Scene:        SceneIndustrialWarehouse,
	}
}

// Validate reports the first field holding a value outside its enum.
func (c Config) Validate() error {
	if _, ok := shotPhrases[c.Shot]; !ok {
		return fmt.Errorf("style: unknown shot %q", string(c.Shot))
	}
	if _, ok := atmospherePhrases[c.Atmosphere]; !ok {
		return fmt.Errorf("style: unknown atmosphere %q", string(c.Atmosphere))
	}
	if _, ok := lightPhrases[c.Light]; !ok {
		return fmt.Errorf("style: unknown light %q", string(c.Light))
	}
	if _, ok := cameraPhrases[c.Camera]; !ok {
		return fmt.Errorf("style: unknown camera %q", string(c.Camera))
	}
	if _, ok := genderPhrases[c.Gender]; !ok {
		return fmt.Errorf("style: unknown gender %q", string(c.Gender))
	}
	if _, ok := nationalityPhrases[c.Nationality]; !ok {
		return fmt.Errorf("style: unknown nationality %q", string(c.Nationality))
	}
	if _, ok := artDirectionPhrases[c.ArtDirection]; !ok {
		return fmt.Errorf("style: unknown artDirection %q", string(c.ArtDirection))
	}
	if _, ok := scenePhrases[c.Scene]; !ok {
		return fmt.Errorf("style: unknown scene %q", string(c.Scene))
	}
	return nil
}

var shotPhrases = map[Shot]string{
	ShotWide:    "广角全身镜头",
	ShotMedium:  "中景半身镜头",
	ShotCloseUp: "特写镜头",
}

var atmospherePhrases = map[Atmosphere]string{
	AtmosphereDarkLuxury: "高级暗调氛围",
	AtmosphereBright:     "明亮活力氛围",
	AtmosphereNatureZen:  "自然疗愈氛围",
	AtmosphereCyberpunk:  "赛博朋克氛围",
}

var lightPhrases = map[Light]string{
	LightWarmRim:       "暖色轮廓光",
	LightCinematicCool: "电影感冷光",
	LightNeon:          "霓虹灯效",
	LightSoftNatural:   "自然柔光",
}

var cameraPhrases = map[Camera]string{
	CameraSonyA7R4:    "索尼A7R IV",
	CameraKodakPortra: "柯达Portra 400胶片",
	CameraGoPro:       "GoPro Hero 10运动视角",
}

var genderPhrases = map[Gender]string{
	GenderFemale: "女性",
	GenderMale:   "男性",
	GenderMixed:  "混合性别",
}

var nationalityPhrases = map[Nationality]string{
	NationalityAsian:     "亚洲",
	NationalityCaucasian: "欧美",
	NationalityBlack:     "黑人",
	NationalityDiverse:   "多元化",
}

var artDirectionPhrases = map[ArtDirection]string{
	ArtNetflixDocumentary: "Netflix纪录片风格，电影级景深，真实胶片颗粒感，情绪化暗调，叙事感构图",
	ArtNikeCommercial:     "Nike商业广告风格，英雄主义氛围，高对比度，汗水反光，极致动态，充满力量感",
	ArtLululemon:          "Lululemon生活方式风格，明亮干净，柔和色调，自然光，高级灰度，愉悦感",
	ArtCrossFit:           "CrossFit硬核竞技风格，粗粝质感，空气中的镁粉，冷峻工业风，爆发力，低饱和度",
	ArtVogue:              "Vogue运动时尚大片，精致布光，模特姿态优雅，色彩鲜艳，杂志封面质感，锐利对焦",
}

var scenePhrases = map[Scene]string{
	SceneIndustrialWarehouse: "暗黑工业风仓库，水泥墙面，裸露管道，戏剧性光影",
	SceneWellnessStudio:      "高端私教工作室，暖木色调，落地镜，高级酒店质感",
	SceneCyberNeonGym:        "赛博朋克健身房，黑暗背景，霓虹灯条，沉浸式科技感",
	SceneZenNature:           "自然禅意空间，绿植环绕，白纱帘，充足阳光，宁静致远",
	SceneUrbanRooftop:        "城市天台，开阔视野，城市天际线背景，黄金时刻夕阳",
	SceneScandiHome:          "北欧风格居家环境，干净明亮的客厅，充满生活气息",
}

func phraseOf[T ~string](table map[T]string, v T, category string) string {
	p, ok := table[v]
	if !ok {
		panic(fmt.Sprintf("style: no %s phrase for %q", category, string(v)))
	}
	return p
}

// Phrase returns the Chinese prompt fragment for a shot value.
func (v Shot) Phrase() string { return phraseOf(shotPhrases, v, "shot") }

// Phrase returns the Chinese prompt fragment for an atmosphere value.
func (v Atmosphere) Phrase() string { return phraseOf(atmospherePhrases, v, "atmosphere") }

// Phrase returns the Chinese prompt fragment for a light value.
func (v Light) Phrase() string { return phraseOf(lightPhrases, v, "light") }

// Phrase returns the Chinese prompt fragment for a camera value.
func (v Camera) Phrase() string { return phraseOf(cameraPhrases, v, "camera") }

// Phrase returns the Chinese prompt fragment for a gender value.
func (v Gender) Phrase() string { return phraseOf(genderPhrases, v, "gender") }

// Phrase returns the Chinese prompt fragment for a nationality value.
func (v Nationality) Phrase() string { return phraseOf(nationalityPhrases, v, "nationality") }

// Phrase returns the Chinese prompt fragment for an art-direction value.
func (v ArtDirection) Phrase() string { return phraseOf(artDirectionPhrases, v, "artDirection") }

// Phrase returns the Chinese prompt fragment for a scene value.
func (v Scene) Phrase() string { return phraseOf(scenePhrases, v, "scene") }
