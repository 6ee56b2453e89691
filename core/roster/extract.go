package roster

// Assignment is one slot a worker is scheduled into.
type Assignment struct {
	Station int    `json:"station" csv:"station"`
	Day     string `json:"day" csv:"day"`
	Shift   string `json:"shift" csv:"shift"`
}

// Schedule is the decoded solution of one run.
type Schedule struct {
	// Roster maps station -> day -> shift -> assigned workers, in
	// worker-list order.
	Roster map[int]map[string]map[string][]string
	// ByWorker lists each worker's slots. Idle workers are present with
	// an empty list.
	ByWorker map[string][]Assignment
	// Needed lists the workers whose activation flag solved to 1.
	Needed []string
}

// assigned reads a relaxed binary back to a boolean, tolerating solver
// epsilon around the integer values.
func assigned(v float64) bool { return v > 0.5 }

// Extract decodes solved variable values into a Schedule. It is a pure
// function of its inputs: the same value slice always yields the same
// views. values must cover every variable of the built model.
func Extract(values []float64, ix *Index) Schedule {
	p := ix.Params()
	sched := Schedule{
		Roster:   make(map[int]map[string]map[string][]string, p.Stations),
		ByWorker: make(map[string][]Assignment, len(p.Workers)),
	}
	for s := 0; s < p.Stations; s++ {
		sched.Roster[s] = make(map[string]map[string][]string, len(p.Days))
		for _, day := range p.Days {
			sched.Roster[s][day] = make(map[string][]string, len(p.Shifts))
			for _, shift := range p.Shifts {
				sched.Roster[s][day][shift] = []string{}
			}
		}
	}
	for w, worker := range p.Workers {
		slots := []Assignment{}
		for s := 0; s < p.Stations; s++ {
			for d, day := range p.Days {
				for sh, shift := range p.Shifts {
					if !assigned(values[ix.Works(w, s, d, sh)]) {
						continue
					}
					slots = append(slots, Assignment{Station: s, Day: day, Shift: shift})
					sched.Roster[s][day][shift] = append(sched.Roster[s][day][shift], worker)
				}
			}
		}
		sched.ByWorker[worker] = slots
		if assigned(values[ix.Needed(w)]) {
			sched.Needed = append(sched.Needed, worker)
		}
	}
	return sched
}
