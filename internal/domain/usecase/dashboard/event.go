package dashboard

// Event triggers a dashboard refresh
type Event interface {
	event()
}

// CitySelected switches the dashboard to City and refreshes it
type CitySelected struct {
	City string
}

// TimerTick refreshes the currently selected city
type TimerTick struct{}

func (CitySelected) event() {}

func (TimerTick) event() {}
