package style

// Option pairs a machine value with the bilingual label shown in selectors.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Options groups every selector list the configuration panel renders.
type Options struct {
	Shot         []Option `json:"shot"`
	Atmosphere   []Option `json:"atmosphere"`
	Light        []Option `json:"light"`
	Camera       []Option `json:"camera"`
	Gender       []Option `json:"gender"`
	Nationality  []Option `json:"nationality"`
	ArtDirection []Option `json:"artDirection"`
	Scene        []Option `json:"scene"`
}

// AllOptions returns the full selector catalog in display order.
func AllOptions() Options {
	return Options{
		Shot: []Option{
			{Label: "广角全身 (Wide Shot)", Value: string(ShotWide)},
			{Label: "中景半身 (Medium Shot)", Value: string(ShotMedium)},
			{Label: "特写 (Close-up)", Value: string(ShotCloseUp)},
		},
		Atmosphere: []Option{
			{Label: "高级暗调 (Dark Luxury)", Value: string(AtmosphereDarkLuxury)},
			{Label: "明亮活力 (Bright & Energetic)", Value: string(AtmosphereBright)},
			{Label: "自然疗愈 (Nature & Zen)", Value: string(AtmosphereNatureZen)},
			{Label: "赛博朋克 (Cyberpunk)", Value: string(AtmosphereCyberpunk)},
		},
		Light: []Option{
			{Label: "暖色轮廓光 (Warm Rim)", Value: string(LightWarmRim)},
			{Label: "电影感冷光 (Cinematic Cool)", Value: string(LightCinematicCool)},
			{Label: "霓虹灯效 (Neon)", Value: string(LightNeon)},
			{Label: "自然柔光 (Soft Natural)", Value: string(LightSoftNatural)},
		},
		Camera: []Option{
			{Label: "索尼高清 (Sony A7R IV)", Value: string(CameraSonyA7R4)},
			{Label: "胶片感 (Kodak Portra 400)", Value: string(CameraKodakPortra)},
			{Label: "运动相机 (GoPro Hero 10)", Value: string(CameraGoPro)},
		},
		Gender: []Option{
			{Label: "女 (Female)", Value: string(GenderFemale)},
			{Label: "男 (Male)", Value: string(GenderMale)},
			{Label: "混合 (Mixed)", Value: string(GenderMixed)},
		},
		Nationality: []Option{
			{Label: "亚洲 (Asian)", Value: string(NationalityAsian)},
			{Label: "欧美 (Caucasian)", Value: string(NationalityCaucasian)},
			{Label: "黑人 (Black)", Value: string(NationalityBlack)},
			{Label: "多元化 (Diverse)", Value: string(NationalityDiverse)},
		},
		ArtDirection: []Option{
			{Label: "Netflix 纪录片团队 (Netflix Docu)", Value: string(ArtNetflixDocumentary)},
			{Label: "Nike 商业广告团队 (Nike Commercial)", Value: string(ArtNikeCommercial)},
			{Label: "Lululemon 生活方式团队 (Clean Lifestyle)", Value: string(ArtLululemon)},
			{Label: "CrossFit 硬核竞技团队 (Industrial)", Value: string(ArtCrossFit)},
			{Label: "Vogue 运动时尚团队 (High Fashion)", Value: string(ArtVogue)},
		},
		Scene: []Option{
			{Label: "暗黑工业 (Dark Industrial)", Value: string(SceneIndustrialWarehouse)},
			{Label: "高端私教 (Luxury Wellness)", Value: string(SceneWellnessStudio)},
			{Label: "赛博霓虹 (Cyber Neon)", Value: string(SceneCyberNeonGym)},
			{Label: "自然禅意 (Zen Nature)", Value: string(SceneZenNature)},
			{Label: "城市天台 (Urban Rooftop)", Value: string(SceneUrbanRooftop)},
			{Label: "北欧居家 (Sunlit Scandi)", Value: string(SceneScandiHome)},
		},
	}
}
