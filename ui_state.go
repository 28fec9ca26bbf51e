package main

type uiState struct {
	mode                    mode
	command                 CommandInput
	dateRange               dateRangeUI
	focusCol                int // controller column index with header focus
	noticeMsg               string
	noticeType              noticeKind
	noticeSeq               int
	noticeArmed             bool
	searchQuery             string
	visibleStart            int
	visibleEnd              int
	debugCursorHeight       int
	debugHeightFree         int
	debugDesiredAboveHeight int
}
