package application

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"alvrsettings/internal/definition"
	"alvrsettings/internal/domain"
	"alvrsettings/internal/domain/entities"
	"alvrsettings/internal/domain/schema"
	"alvrsettings/internal/infrastructure/i18n"
)

func newService(t *testing.T) (*SettingsService, *BoundTree) {
	t.Helper()
	tr, err := i18n.NewTranslator("en")
	if err != nil {
		t.Fatalf("NewTranslator failed: %v", err)
	}
	b, _ := bind(t, nil)
	return NewSettingsService(b, tr), b
}

func TestDescribe_Gamma(t *testing.T) {
	svc, _ := newService(t)

	got, err := svc.Describe("zh-CN", gammaPath)
	if err != nil {
		t.Fatalf("Describe failed: %v", err)
	}
	lo, hi := 0.0, 5.0
	want := entities.SettingView{
		Path:        gammaPath,
		Kind:        "leaf",
		Name:        "伽马",
		Description: "伽玛:范围[0; 5],默认值为1。使用值2.2校正从sRGB到RGB空间的颜色",
		Settable:    true,
		Active:      true,
		Value:       1.0,
		Default:     1.0,
		Min:         &lo,
		Max:         &hi,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Describe mismatch (-want +got):\n%s", diff)
	}
}

func TestDescribe_Codec(t *testing.T) {
	svc, _ := newService(t)

	if err := svc.Set(codecPath, "HEVC", "test"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, err := svc.Describe("en", codecPath)
	if err != nil {
		t.Fatalf("Describe failed: %v", err)
	}
	want := []entities.VariantView{
		{Name: "H264", Label: "H.264 (performance)", Description: "Use the H.264 codec"},
		{Name: "HEVC", Label: "HEVC (quality)", Description: "Use the HEVC codec", Selected: true},
	}
	if diff := cmp.Diff(want, got.Variants); diff != "" {
		t.Errorf("Variants mismatch (-want +got):\n%s", diff)
	}

	// The unselected variant still resolves, it is only inactive.
	h264, err := svc.Describe("zh", h264Path)
	if err != nil {
		t.Fatalf("Describe(H264) failed: %v", err)
	}
	if h264.Name != "H.264（性能优先）" || h264.Active {
		t.Errorf("H264 view = %+v", h264)
	}
}

func TestDescribe_UnknownPath(t *testing.T) {
	svc, _ := newService(t)

	if _, err := svc.Describe("en", "_root_video_nope"); !errors.Is(err, domain.ErrUnknownPath) {
		t.Errorf("Describe error = %v, want ErrUnknownPath", err)
	}
}

func TestForm_SkipsAnonymousSections(t *testing.T) {
	svc, _ := newService(t)

	views, err := svc.Form("en", "audio")
	if err != nil {
		t.Fatalf("Form failed: %v", err)
	}
	var paths []string
	for _, v := range views {
		paths = append(paths, v.Path)
	}
	want := []string{
		"_root_audio_tab",
		"_root_audio_gameAudio",
		"_root_audio_gameAudio_enabled",
		"_root_audio_gameAudio_content_deviceDropdown",
		"_root_audio_gameAudio_content_device",
		"_root_audio_microphone",
		"_root_audio_microphone_enabled",
		"_root_audio_microphone_content_deviceDropdown",
	}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Errorf("Form paths mismatch (-want +got):\n%s", diff)
	}
	for _, v := range views {
		if v.Path == "_root_audio_microphone_content_deviceDropdown" && v.Active {
			t.Error("microphone device should be inactive while the microphone is disabled")
		}
	}

	if _, err := svc.Form("en", "nope"); !errors.Is(err, domain.ErrUnknownPath) {
		t.Errorf("Form on an unknown tab = %v", err)
	}
}

func TestTabs(t *testing.T) {
	svc, _ := newService(t)

	views, err := svc.Tabs("en")
	if err != nil {
		t.Fatalf("Tabs failed: %v", err)
	}
	var names []string
	for _, v := range views {
		names = append(names, v.Kind+":"+v.Path)
	}
	want := []string{
		"tab:_root_video_tab",
		"tab:_root_audio_tab",
		"tab:_root_headset_tab",
		"tab:_root_connection_tab",
		"tab:_root_extra_tab",
	}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("Tabs mismatch (-want +got):\n%s", diff)
	}
}

type missingResolver struct{}

func (missingResolver) Resolve(path, field, _ string) (string, error) {
	if field == schema.FieldDescription {
		return "", nil
	}
	return "", &domain.MissingNameError{Missing: map[string][]string{"en": {schema.Key(path, field)}}}
}

func TestDescribe_MissingName(t *testing.T) {
	b, err := Bind(definition.Tree(), nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	svc := NewSettingsService(b, missingResolver{})

	if _, err := svc.Describe("en", gammaPath); !errors.Is(err, domain.ErrMissingName) {
		t.Errorf("Describe error = %v, want ErrMissingName", err)
	}
}

func TestResetAll_Service(t *testing.T) {
	svc, _ := newService(t)

	if err := svc.Set(portPath, 8080, "test"); err != nil {
		t.Fatal(err)
	}
	changed, err := svc.ResetAll("")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{portPath}, changed); diff != "" {
		t.Errorf("ResetAll mismatch (-want +got):\n%s", diff)
	}
	if got, _ := svc.Get(portPath); got != int64(9944) {
		t.Errorf("Get after ResetAll = %v", got)
	}
}

func TestFind(t *testing.T) {
	svc, _ := newService(t)

	views, err := svc.Find("zh", "伽马", 0)
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if len(views) != 1 || views[0].Path != gammaPath {
		t.Fatalf("Find(伽马) = %+v", views)
	}

	views, err = svc.Find("en", "POSITIONOFFSET_", 2)
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	var paths []string
	for _, v := range views {
		paths = append(paths, v.Path)
	}
	want := []string{"_root_headset_positionOffset_0", "_root_headset_positionOffset_1"}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Errorf("Find paths mismatch (-want +got):\n%s", diff)
	}
}
