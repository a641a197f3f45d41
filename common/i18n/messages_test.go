package i18n

import (
	"reflect"
	"testing"
)

func TestParseLanguage(t *testing.T) {
	tests := map[string]Language{
		"zh":    Chinese,
		"ZH-CN": Chinese,
		"en":    English,
		"fr":    English,
	}
	for in, want := range tests {
		if got := ParseLanguage(in); got != want {
			t.Fatalf("%q: got %s, want %s", in, got, want)
		}
	}
}

func TestSetLanguage(t *testing.T) {
	defer SetLanguage(English)

	SetLanguage(Chinese)
	if !IsChineseEnvironment() || I18nMsg.Probe.Short != ChineseProbeMessages.Short {
		t.Fatal("Chinese messages not selected")
	}
	SetLanguage(English)
	if I18nMsg.Probe.Short != EnglishProbeMessages.Short {
		t.Fatal("English messages not selected")
	}
}

// Every message must be translated in every language.
func TestMessagesComplete(t *testing.T) {
	for name, all := range map[string]AllMessages{"en": EnglishAllMessages, "zh": ChineseAllMessages} {
		groups := reflect.ValueOf(all)
		for i := 0; i < groups.NumField(); i++ {
			group := groups.Field(i)
			for j := 0; j < group.NumField(); j++ {
				if group.Field(j).String() == "" {
					t.Errorf("%s: %s.%s is empty", name, groups.Type().Field(i).Name, group.Type().Field(j).Name)
				}
			}
		}
	}
}
