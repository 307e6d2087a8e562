package app

import (
	"github.com/example/rollcall/internal/core/legislature"
	"github.com/example/rollcall/internal/core/names"
	"github.com/example/rollcall/internal/ports/secondary"
)

func memberFromRecord(r *secondary.MemberRecord) legislature.Member {
	return legislature.Member{
		ID: r.ID,
		Name: names.Name{
			First:  r.First,
			Middle: r.Middle,
			Last:   r.Last,
			Suffix: r.Suffix,
		},
		DOB: r.DOB,
		IDs: legislature.Identifiers{
			legislature.HouseArchiveID:  r.HouseArchiveID,
			legislature.HouseCurrentID:  r.HouseCurrentID,
			legislature.SenateArchiveID: r.SenateArchiveID,
			legislature.SenateCurrentID: r.SenateCurrentID,
		},
	}
}

func membersFromRecords(records []*secondary.MemberRecord) []legislature.Member {
	members := make([]legislature.Member, len(records))
	for i, r := range records {
		members[i] = memberFromRecord(r)
	}
	return members
}

func servicesFromRecords(records []*secondary.ServiceRecord) []legislature.Service {
	services := make([]legislature.Service, len(records))
	for i, r := range records {
		services[i] = legislature.Service{
			ID:       r.ID,
			MemberID: r.MemberID,
			Year:     r.Year,
			Chamber:  legislature.Chamber(r.Chamber),
			District: r.District,
			Party:    r.Party,
		}
	}
	return services
}

func daysFromRecords(records []*secondary.SessionDayRecord) []legislature.SessionDay {
	days := make([]legislature.SessionDay, len(records))
	for i, r := range records {
		days[i] = legislature.SessionDay{
			ID:      r.ID,
			Chamber: legislature.Chamber(r.Chamber),
			Date:    r.Date,
			Crawled: r.Crawled,
		}
	}
	return days
}

func rollsFromRecords(records []*secondary.RollCallRecord) []legislature.RollCall {
	rolls := make([]legislature.RollCall, len(records))
	for i, r := range records {
		rolls[i] = legislature.RollCall{
			ID:      r.ID,
			DayID:   r.DayID,
			Chamber: legislature.Chamber(r.Chamber),
			Stamp:   r.Stamp,
			DayDate: r.DayDate,
			Crawled: r.Crawled,
		}
	}
	return rolls
}
