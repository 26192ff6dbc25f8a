package keyboard

// VirtualKey is a Win32 virtual-key code. The normalizer and the accelerator
// encoding both speak this code space.
type VirtualKey uint32

// Win32 virtual-key codes, see winuser.h. Letters and digits use their ASCII
// uppercase code points and are not listed.
const (
	VKCancel            VirtualKey = 0x03
	VKBack              VirtualKey = 0x08
	VKTab               VirtualKey = 0x09
	VKReturn            VirtualKey = 0x0D
	VKShift             VirtualKey = 0x10
	VKControl           VirtualKey = 0x11
	VKMenu              VirtualKey = 0x12
	VKPause             VirtualKey = 0x13
	VKCapital           VirtualKey = 0x14
	VKKana              VirtualKey = 0x15
	VKKanji             VirtualKey = 0x19
	VKEscape            VirtualKey = 0x1B
	VKConvert           VirtualKey = 0x1C
	VKNonConvert        VirtualKey = 0x1D
	VKSpace             VirtualKey = 0x20
	VKPrior             VirtualKey = 0x21
	VKNext              VirtualKey = 0x22
	VKEnd               VirtualKey = 0x23
	VKHome              VirtualKey = 0x24
	VKLeft              VirtualKey = 0x25
	VKUp                VirtualKey = 0x26
	VKRight             VirtualKey = 0x27
	VKDown              VirtualKey = 0x28
	VKSnapshot          VirtualKey = 0x2C
	VKInsert            VirtualKey = 0x2D
	VKDelete            VirtualKey = 0x2E
	VKLWin              VirtualKey = 0x5B
	VKRWin              VirtualKey = 0x5C
	VKApps              VirtualKey = 0x5D
	VKSleep             VirtualKey = 0x5F
	VKNumpad0           VirtualKey = 0x60
	VKNumpad1           VirtualKey = 0x61
	VKNumpad2           VirtualKey = 0x62
	VKNumpad3           VirtualKey = 0x63
	VKNumpad4           VirtualKey = 0x64
	VKNumpad5           VirtualKey = 0x65
	VKNumpad6           VirtualKey = 0x66
	VKNumpad7           VirtualKey = 0x67
	VKNumpad8           VirtualKey = 0x68
	VKNumpad9           VirtualKey = 0x69
	VKMultiply          VirtualKey = 0x6A
	VKAdd               VirtualKey = 0x6B
	VKSeparator         VirtualKey = 0x6C
	VKSubtract          VirtualKey = 0x6D
	VKDecimal           VirtualKey = 0x6E
	VKDivide            VirtualKey = 0x6F
	VKF1                VirtualKey = 0x70
	VKF2                VirtualKey = 0x71
	VKF3                VirtualKey = 0x72
	VKF4                VirtualKey = 0x73
	VKF5                VirtualKey = 0x74
	VKF6                VirtualKey = 0x75
	VKF7                VirtualKey = 0x76
	VKF8                VirtualKey = 0x77
	VKF9                VirtualKey = 0x78
	VKF10               VirtualKey = 0x79
	VKF11               VirtualKey = 0x7A
	VKF12               VirtualKey = 0x7B
	VKF13               VirtualKey = 0x7C
	VKF14               VirtualKey = 0x7D
	VKF15               VirtualKey = 0x7E
	VKF16               VirtualKey = 0x7F
	VKF17               VirtualKey = 0x80
	VKF18               VirtualKey = 0x81
	VKF19               VirtualKey = 0x82
	VKF20               VirtualKey = 0x83
	VKF21               VirtualKey = 0x84
	VKF22               VirtualKey = 0x85
	VKF23               VirtualKey = 0x86
	VKF24               VirtualKey = 0x87
	VKNumlock           VirtualKey = 0x90
	VKScroll            VirtualKey = 0x91
	VKLShift            VirtualKey = 0xA0
	VKRShift            VirtualKey = 0xA1
	VKLControl          VirtualKey = 0xA2
	VKRControl          VirtualKey = 0xA3
	VKLMenu             VirtualKey = 0xA4
	VKRMenu             VirtualKey = 0xA5
	VKBrowserBack       VirtualKey = 0xA6
	VKBrowserForward    VirtualKey = 0xA7
	VKBrowserRefresh    VirtualKey = 0xA8
	VKBrowserStop       VirtualKey = 0xA9
	VKBrowserSearch     VirtualKey = 0xAA
	VKBrowserFavorites  VirtualKey = 0xAB
	VKBrowserHome       VirtualKey = 0xAC
	VKVolumeMute        VirtualKey = 0xAD
	VKVolumeDown        VirtualKey = 0xAE
	VKVolumeUp          VirtualKey = 0xAF
	VKMediaNextTrack    VirtualKey = 0xB0
	VKMediaPrevTrack    VirtualKey = 0xB1
	VKMediaStop         VirtualKey = 0xB2
	VKMediaPlayPause    VirtualKey = 0xB3
	VKLaunchMail        VirtualKey = 0xB4
	VKLaunchMediaSelect VirtualKey = 0xB5
	VKOEM1              VirtualKey = 0xBA
	VKOEMPlus           VirtualKey = 0xBB
	VKOEMComma          VirtualKey = 0xBC
	VKOEMMinus          VirtualKey = 0xBD
	VKOEMPeriod         VirtualKey = 0xBE
	VKOEM2              VirtualKey = 0xBF
	VKOEM3              VirtualKey = 0xC0
	VKOEM4              VirtualKey = 0xDB
	VKOEM5              VirtualKey = 0xDC
	VKOEM6              VirtualKey = 0xDD
	VKOEM7              VirtualKey = 0xDE
	VKOEM102            VirtualKey = 0xE2
)

// vkRawInputPause is reported instead of VKPause by raw input for the second
// half of the Pause sequence.
const vkRawInputPause VirtualKey = 0xFF

var vkToKey = map[VirtualKey]SymbolicKey{
	VKBack:              KeyBack,
	VKTab:               KeyTab,
	VKReturn:            KeyReturn,
	VKLShift:            KeyLShift,
	VKRShift:            KeyRShift,
	VKLControl:          KeyLControl,
	VKRControl:          KeyRControl,
	VKLMenu:             KeyLAlt,
	VKRMenu:             KeyRAlt,
	VKPause:             KeyPause,
	VKCapital:           KeyCapital,
	VKKana:              KeyKana,
	VKKanji:             KeyKanji,
	VKEscape:            KeyEscape,
	VKConvert:           KeyConvert,
	VKNonConvert:        KeyNoConvert,
	VKSpace:             KeySpace,
	VKPrior:             KeyPageUp,
	VKNext:              KeyPageDown,
	VKEnd:               KeyEnd,
	VKHome:              KeyHome,
	VKLeft:              KeyLeft,
	VKUp:                KeyUp,
	VKRight:             KeyRight,
	VKDown:              KeyDown,
	VKSnapshot:          KeySnapshot,
	VKInsert:            KeyInsert,
	VKDelete:            KeyDelete,
	VKLWin:              KeyLWin,
	VKRWin:              KeyRWin,
	VKApps:              KeyApps,
	VKSleep:             KeySleep,
	VKNumpad0:           KeyNumpad0,
	VKNumpad1:           KeyNumpad1,
	VKNumpad2:           KeyNumpad2,
	VKNumpad3:           KeyNumpad3,
	VKNumpad4:           KeyNumpad4,
	VKNumpad5:           KeyNumpad5,
	VKNumpad6:           KeyNumpad6,
	VKNumpad7:           KeyNumpad7,
	VKNumpad8:           KeyNumpad8,
	VKNumpad9:           KeyNumpad9,
	VKMultiply:          KeyNumpadMultiply,
	VKAdd:               KeyNumpadAdd,
	VKSubtract:          KeyNumpadSubtract,
	VKDecimal:           KeyNumpadDecimal,
	VKDivide:            KeyNumpadDivide,
	VKF1:                KeyF1,
	VKF2:                KeyF2,
	VKF3:                KeyF3,
	VKF4:                KeyF4,
	VKF5:                KeyF5,
	VKF6:                KeyF6,
	VKF7:                KeyF7,
	VKF8:                KeyF8,
	VKF9:                KeyF9,
	VKF10:               KeyF10,
	VKF11:               KeyF11,
	VKF12:               KeyF12,
	VKF13:               KeyF13,
	VKF14:               KeyF14,
	VKF15:               KeyF15,
	VKF16:               KeyF16,
	VKF17:               KeyF17,
	VKF18:               KeyF18,
	VKF19:               KeyF19,
	VKF20:               KeyF20,
	VKF21:               KeyF21,
	VKF22:               KeyF22,
	VKF23:               KeyF23,
	VKF24:               KeyF24,
	VKNumlock:           KeyNumlock,
	VKScroll:            KeyScroll,
	VKBrowserBack:       KeyNavigateBackward,
	VKBrowserForward:    KeyNavigateForward,
	VKBrowserRefresh:    KeyWebRefresh,
	VKBrowserStop:       KeyWebStop,
	VKBrowserSearch:     KeyWebSearch,
	VKBrowserFavorites:  KeyWebFavorites,
	VKBrowserHome:       KeyWebHome,
	VKVolumeMute:        KeyMute,
	VKVolumeDown:        KeyVolumeDown,
	VKVolumeUp:          KeyVolumeUp,
	VKMediaNextTrack:    KeyNextTrack,
	VKMediaPrevTrack:    KeyPrevTrack,
	VKMediaStop:         KeyMediaStop,
	VKMediaPlayPause:    KeyPlayPause,
	VKLaunchMail:        KeyMail,
	VKLaunchMediaSelect: KeyMediaSelect,
	VKOEMPlus:           KeyEquals,
	VKOEMComma:          KeyComma,
	VKOEMMinus:          KeyMinus,
	VKOEMPeriod:         KeyPeriod,
	VKOEM102:            KeyOEM102,
}

var keyToVK = func() map[SymbolicKey]VirtualKey {
	m := make(map[SymbolicKey]VirtualKey, len(vkToKey)+36)
	for vk, k := range vkToKey {
		m[k] = vk
	}
	for i := 0; i < 10; i++ {
		m[KeyKey1+SymbolicKey(i)] = VirtualKey('1' + i)
	}
	m[KeyKey0] = VirtualKey('0')
	for i := 0; i < 26; i++ {
		m[KeyA+SymbolicKey(i)] = VirtualKey('A' + i)
	}
	return m
}()

// FromVirtualKey maps a resolved virtual key to its symbolic key using the
// static table only. The layout-dependent OEM punctuation codes return
// KeyNone here; Normalizer.SymbolicKey resolves those against the layout.
func FromVirtualKey(vk VirtualKey) SymbolicKey {
	switch {
	case vk >= '0' && vk <= '9':
		if vk == '0' {
			return KeyKey0
		}
		return KeyKey1 + SymbolicKey(vk-'1')
	case vk >= 'A' && vk <= 'Z':
		return KeyA + SymbolicKey(vk-'A')
	}
	return vkToKey[vk]
}

// ToVirtualKey maps a symbolic key back to its virtual key. Keys without a
// Win32 analogue and the layout-dependent punctuation keys report false.
func ToVirtualKey(k SymbolicKey) (VirtualKey, bool) {
	vk, ok := keyToVK[k]
	return vk, ok
}

// isTextKey reports whether vk is one of the OEM codes whose physical key
// differs between layouts.
func isTextKey(vk VirtualKey) bool {
	switch vk {
	case VKOEM1, VKOEM2, VKOEM3, VKOEM4, VKOEM5, VKOEM6, VKOEM7:
		return true
	}
	return false
}

var textKeys = map[rune]SymbolicKey{
	';':  KeySemicolon,
	'/':  KeySlash,
	'`':  KeyGrave,
	'[':  KeyLBracket,
	']':  KeyRBracket,
	'\'': KeyApostrophe,
	'\\': KeyBackslash,
}
