package platform

// WindowType classifies a window the way _NET_WM_WINDOW_TYPE does.
type WindowType int

const (
	WindowTypeNormal WindowType = iota
	WindowTypeDialog
	WindowTypeDock
	WindowTypeDesktop
	WindowTypeToolbar
	WindowTypeMenu
	WindowTypeUtility
	WindowTypeSplash
	WindowTypeNotification
	WindowTypeTooltip
	WindowTypePopupMenu
	WindowTypeDropdownMenu
	WindowTypeCombo
	WindowTypeDND
)

var windowTypeAtoms = map[string]WindowType{
	"_NET_WM_WINDOW_TYPE_NORMAL":        WindowTypeNormal,
	"_NET_WM_WINDOW_TYPE_DIALOG":        WindowTypeDialog,
	"_NET_WM_WINDOW_TYPE_DOCK":          WindowTypeDock,
	"_NET_WM_WINDOW_TYPE_DESKTOP":       WindowTypeDesktop,
	"_NET_WM_WINDOW_TYPE_TOOLBAR":       WindowTypeToolbar,
	"_NET_WM_WINDOW_TYPE_MENU":          WindowTypeMenu,
	"_NET_WM_WINDOW_TYPE_UTILITY":       WindowTypeUtility,
	"_NET_WM_WINDOW_TYPE_SPLASH":        WindowTypeSplash,
	"_NET_WM_WINDOW_TYPE_NOTIFICATION":  WindowTypeNotification,
	"_NET_WM_WINDOW_TYPE_TOOLTIP":       WindowTypeTooltip,
	"_NET_WM_WINDOW_TYPE_POPUP_MENU":    WindowTypePopupMenu,
	"_NET_WM_WINDOW_TYPE_DROPDOWN_MENU": WindowTypeDropdownMenu,
	"_NET_WM_WINDOW_TYPE_COMBO":         WindowTypeCombo,
	"_NET_WM_WINDOW_TYPE_DND":           WindowTypeDND,
}

// WindowTypeFromAtoms picks the first recognized type from a
// _NET_WM_WINDOW_TYPE list. Clients list types in order of preference.
func WindowTypeFromAtoms(names []string) WindowType {
	for _, name := range names {
		if t, ok := windowTypeAtoms[name]; ok {
			return t
		}
	}
	return WindowTypeNormal
}

// String returns the lower-case type name.
func (t WindowType) String() string {
	switch t {
	case WindowTypeNormal:
		return "normal"
	case WindowTypeDialog:
		return "dialog"
	case WindowTypeDock:
		return "dock"
	case WindowTypeDesktop:
		return "desktop"
	case WindowTypeToolbar:
		return "toolbar"
	case WindowTypeMenu:
		return "menu"
	case WindowTypeUtility:
		return "utility"
	case WindowTypeSplash:
		return "splash"
	case WindowTypeNotification:
		return "notification"
	case WindowTypeTooltip:
		return "tooltip"
	case WindowTypePopupMenu:
		return "popup-menu"
	case WindowTypeDropdownMenu:
		return "dropdown-menu"
	case WindowTypeCombo:
		return "combo"
	case WindowTypeDND:
		return "dnd"
	default:
		return "unknown"
	}
}
