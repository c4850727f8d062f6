package attendance

type HistoryFilter struct {
	Start  string `form:"start"`
	End    string `form:"end"`
	Status string `form:"status"`
}

type PeriodFilter struct {
	Start string `form:"start" binding:"required"`
	End   string `form:"end" binding:"required"`
}

type BreakResponse struct {
	ID         string  `json:"id"`
	BreakStart string  `json:"break_start"`
	BreakEnd   *string `json:"break_end,omitempty"`
}

type AttendanceResponse struct {
	ID                string          `json:"id"`
	EmployeeID        string          `json:"employee_id"`
	AttendanceDate    string          `json:"attendance_date"`
	ClockInTime       string          `json:"clock_in_time"`
	ClockOutTime      *string         `json:"clock_out_time,omitempty"`
	Status            string          `json:"status"`
	TotalBreakMinutes int             `json:"total_break_minutes"`
	TotalHours        *string         `json:"total_hours,omitempty"`
	Breaks            []BreakResponse `json:"breaks,omitempty"`
}

type TodayStatusResponse struct {
	Attendance          *AttendanceResponse `json:"attendance"`
	OpenBreak           *BreakResponse      `json:"open_break,omitempty"`
	CurrentWorkingHours string              `json:"current_working_hours"`
}

type PeriodHoursResponse struct {
	Start               string `json:"start"`
	End                 string `json:"end"`
	TotalHours          string `json:"total_hours"`
	DaysWorked          int    `json:"days_worked"`
	AverageHoursPerDay string `json:"average_hours_per_day"`
}
