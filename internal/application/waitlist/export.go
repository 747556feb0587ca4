package waitlist

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/raatap-waitlist/internal/domain"
)

var csvHeader = []string{
	"Name", "Email", "Phone", "Age", "Gender", "Institution",
	"From", "To", "Leave Home", "Leave College", "Days",
	"Hosting", "Riding", "Vehicle", "Comfortable With", "Verified", "Joined",
}

// WriteCSV renders entries in the column order of the admin table.
func WriteCSV(w io.Writer, entries []domain.Profile) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, e := range entries {
		row := []string{
			e.FullName,
			e.InstitutionalEmail,
			e.PhoneNumber,
			strconv.Itoa(e.Age),
			e.Gender,
			e.Institution,
			e.FromLocation,
			e.ToLocation,
			e.LeaveHomeTime,
			e.LeaveCollegeTime,
			strings.Join(e.DaysOfCommute, " "),
			yesNo(e.PreferHosting),
			yesNo(e.PreferTakingRide),
			e.VehicleType,
			e.ComfortableWith,
			yesNo(e.EmailVerified),
			e.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
