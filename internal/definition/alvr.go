// Package definition holds the built-in settings schema of the streaming
// host: the tabs shown by the dashboard and every setting under them.
package definition

import "alvrsettings/internal/domain/schema"

var (
	unitOffset = schema.Range{Min: -1, Max: 1}
	rotation   = schema.Range{Min: -180, Max: 180}
)

// ALVR returns the declarative definition of the dashboard settings.
// A fresh slice is returned on every call.
func ALVR() []schema.NodeSpec {
	return []schema.NodeSpec{
		video(),
		audio(),
		headset(),
		connection(),
		extra(),
	}
}

// Tree builds the built-in definition. It panics if the definition is
// malformed, which only a bad edit of this file can cause.
func Tree() *schema.Tree {
	return schema.MustBuild(ALVR())
}

func video() schema.NodeSpec {
	return schema.Tab("video",
		schema.Int("adapterIndex", 0).Within(0, 16),
		schema.Float("preferredFps", 72).Within(60, 120),
		schema.Float("displayRefreshRate", 72).Within(60, 144),
		schema.Int("encodeBitrateMbs", 30).Within(1, 1000),
		schema.String("resolutionDropdown", "100"),
		schema.Choice("renderResolution", "scale",
			schema.VariantWith("scale", schema.Float("", 0.75).Within(0.25, 2)),
			schema.VariantGroup("absolute",
				schema.String("absolute", "2880x1600"),
				schema.Int("width", 2880).Within(32, 8192),
				schema.Int("height", 1600).Within(32, 8192),
			),
		),
		schema.Choice("recommendedTargetResolution", "scale",
			schema.VariantWith("scale", schema.Float("", 0.75).Within(0.25, 2)),
			schema.VariantGroup("absolute",
				schema.String("absolute", "2880x1600"),
				schema.Int("width", 2880).Within(32, 8192),
				schema.Int("height", 1600).Within(32, 8192),
			),
		),
		schema.Float("secondsFromVsyncToPhotons", 0.005).Within(0, 0.1),
		schema.Float("ipd", 0.063).Within(0, 0.1),
		schema.Switch("foveatedRendering", true,
			schema.Float("strength", 2).Within(0, 5),
			schema.Float("shape", 1.5).Within(0.5, 5),
			schema.Float("verticalOffset", 0).Within(-0.05, 0.05),
		),
		schema.Switch("colorCorrection", true,
			schema.Float("brightness", 0).Within(-1, 1),
			schema.Float("contrast", 0).Within(-1, 1),
			schema.Float("saturation", 0).Within(-1, 1),
			schema.Float("gamma", 1).Within(0, 5),
			schema.Float("sharpening", 0).Within(-1, 5),
		),
		schema.Choice("codec", "H264",
			schema.Option("H264"),
			schema.Option("HEVC"),
		),
		schema.Bool("clientRequestRealtimeDecoder", true),
	)
}

func audio() schema.NodeSpec {
	return schema.Tab("audio",
		schema.Switch("gameAudio", true,
			schema.String("deviceDropdown", ""),
			schema.String("device", ""),
		),
		schema.Switch("microphone", false,
			schema.String("deviceDropdown", ""),
		),
	)
}

func headset() schema.NodeSpec {
	return schema.Tab("headset",
		schema.String("headsetEmulationMode", "Oculus Rift S"),
		schema.String("serialNumber", "1WMGH000XX0000"),
		schema.String("trackingSystemName", "oculus"),
		schema.String("modelNumber", "Oculus Rift S"),
		schema.String("driverVersion", "1.42.0"),
		schema.String("manufacturerName", "Oculus"),
		schema.String("renderModelName", "generic_hmd"),
		schema.String("registeredDeviceType", "oculus/1WMGH000XX0000"),
		schema.Int("trackingFrameOffset", 0).Within(-100, 100),
		schema.Vec3("positionOffset", unitOffset, 0, 0, 0),
		schema.Bool("force3dof", false),
		schema.Choice("trackingSpace", "local",
			schema.Option("local"),
			schema.Option("stage"),
		),
		schema.Switch("controllers", true,
			schema.String("controllerMode", "Oculus Rift S"),
			schema.String("trackingSystemName", "oculus"),
			schema.String("trackingSpeed", "normal"),
			schema.String("manufacturerName", "Oculus"),
			schema.String("modelNumber", "Oculus Rift S"),
			schema.String("renderModelNameLeft", "oculus_rifts_controller_left"),
			schema.String("renderModelNameRight", "oculus_rifts_controller_right"),
			schema.String("serialNumber", "1WMGH000XX0000_Controller"),
			schema.String("ctrlType", "oculus_touch"),
			schema.String("registeredDeviceType", "oculus/1WMGH000XX0000_Controller"),
			schema.String("inputProfilePath", "{oculus}/input/touch_profile.json"),
			schema.Float("poseTimeOffset", 0.01).Within(-1, 1),
			schema.Vec3("positionOffsetLeft", unitOffset, -0.0065, -0.0025, -0.0475),
			schema.Vec3("rotationOffsetLeft", rotation, 36, 0, 0),
			schema.Float("hapticsIntensity", 1).Within(0, 5),
			schema.Int("modeIdx", 7).Within(0, 15),
		),
	)
}

func connection() schema.NodeSpec {
	return schema.Tab("connection",
		schema.Int("listenPort", 9944).Within(1, 65535),
		schema.Int("throttlingBitrateBits", 47_000_000).Within(0, 2_000_000_000),
		schema.Int("clientRecvBufferSize", 60_000).Within(0, 10_000_000),
		schema.Int("bufferOffset", 0).Within(-10_000_000, 10_000_000),
		schema.Bool("aggressiveKeyframeResend", false),
		schema.Bool("disableThrottling", false),
	)
}

func extra() schema.NodeSpec {
	return schema.Tab("extra",
		schema.Bool("revertConfirmDialog", true),
		schema.Bool("restartConfirmDialog", false),
		schema.Choice("notificationLevel", "warning",
			schema.Option("error"),
			schema.Option("warning"),
			schema.Option("info"),
			schema.Option("debug"),
		),
		schema.Bool("excludeNotificationsWithoutId", false),
		schema.Choice("theme", "systemDefault",
			schema.Option("systemDefault"),
			schema.Option("classic"),
			schema.Option("darkly"),
		),
	)
}
