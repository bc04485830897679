package monitor

// genericPageSize is the page step for views without a selection.
const genericPageSize = 10

func (s *ViewState) visibleRows() int {
	return max(s.MaxVisibleRows, 1)
}

// ScrollDown moves the selection one row down, scrolling by a single row
// when it would leave the window. n is the number of displayed rows.
func (s *ViewState) ScrollDown(n int) {
	if n == 0 {
		return
	}
	if s.SelectedProcess < n-1 {
		s.SelectedProcess++
		if s.SelectedProcess >= s.ProcessScrollOffset+s.visibleRows() {
			s.ProcessScrollOffset++
		}
	}
}

// ScrollUp moves the selection one row up, scrolling by a single row when needed.
func (s *ViewState) ScrollUp() {
	if s.SelectedProcess > 0 {
		s.SelectedProcess--
		if s.SelectedProcess < s.ProcessScrollOffset {
			s.ProcessScrollOffset--
		}
	}
}

// PageDown moves selection and offset by a full page.
func (s *ViewState) PageDown(n int) {
	if n == 0 {
		return
	}
	page := s.visibleRows()
	s.SelectedProcess = min(s.SelectedProcess+page, n-1)
	s.ProcessScrollOffset = min(s.ProcessScrollOffset+page, max(0, n-page))
}

// PageUp moves selection and offset back by a full page.
func (s *ViewState) PageUp() {
	page := s.visibleRows()
	s.SelectedProcess = max(0, s.SelectedProcess-page)
	s.ProcessScrollOffset = max(0, s.ProcessScrollOffset-page)
}

// JumpTop selects the first row.
func (s *ViewState) JumpTop() {
	s.SelectedProcess = 0
	s.ProcessScrollOffset = 0
}

// JumpBottom selects the last row and shows the final page.
func (s *ViewState) JumpBottom(n int) {
	if n == 0 {
		s.JumpTop()
		return
	}
	s.SelectedProcess = n - 1
	s.ProcessScrollOffset = max(0, n-s.visibleRows())
}

// Clamp forces selection and offset back into range for n rows so that
// offset <= selected < offset+visible rows. It runs after every tick and resize.
func (s *ViewState) Clamp(n int) {
	if n <= 0 {
		s.SelectedProcess = 0
		s.ProcessScrollOffset = 0
		return
	}
	rows := s.visibleRows()
	s.SelectedProcess = min(max(s.SelectedProcess, 0), n-1)
	s.ProcessScrollOffset = min(max(s.ProcessScrollOffset, 0), max(0, n-rows))
	if s.SelectedProcess < s.ProcessScrollOffset {
		s.ProcessScrollOffset = s.SelectedProcess
	}
	if s.SelectedProcess >= s.ProcessScrollOffset+rows {
		s.ProcessScrollOffset = s.SelectedProcess - rows + 1
	}
}

// LineDown scrolls a non-process view by one line. n is its content length.
func (s *ViewState) LineDown(n int) {
	s.ScrollOffset = min(s.ScrollOffset+1, maxLineOffset(n))
}

// LineUp scrolls a non-process view back one line.
func (s *ViewState) LineUp() {
	s.ScrollOffset = max(0, s.ScrollOffset-1)
}

// LinePageDown scrolls a non-process view forward a page.
func (s *ViewState) LinePageDown(n int) {
	s.ScrollOffset = min(s.ScrollOffset+genericPageSize, maxLineOffset(n))
}

// LinePageUp scrolls a non-process view back a page.
func (s *ViewState) LinePageUp() {
	s.ScrollOffset = max(0, s.ScrollOffset-genericPageSize)
}

// LineTop scrolls a non-process view to its start.
func (s *ViewState) LineTop() {
	s.ScrollOffset = 0
}

// LineBottom scrolls a non-process view so its last line is first.
func (s *ViewState) LineBottom(n int) {
	s.ScrollOffset = maxLineOffset(n)
}

// ClampLines keeps ScrollOffset within a view of n lines.
func (s *ViewState) ClampLines(n int) {
	s.ScrollOffset = min(max(s.ScrollOffset, 0), maxLineOffset(n))
}

func maxLineOffset(n int) int {
	return max(0, n-1)
}
