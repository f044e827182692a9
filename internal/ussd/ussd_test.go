package ussd_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edufair/internal/domain"
	"edufair/internal/ussd"
)

func sampleRegs() []domain.Registration {
	at := func(h int) time.Time { return time.Date(2024, 9, 1, h, 15, 0, 0, time.UTC) }
	return []domain.Registration{
		{ID: "KEF1", FullName: "Ahmed Mohamed Ali", Phone: "+254712345678", Type: domain.RegistrationStudent, School: "Wamy High School", CreatedAt: at(9)},
		{ID: "KEF2", FullName: "Fatima Hassan", Phone: "+254722000000", Type: domain.RegistrationTeacher, School: "Wamy High School", CreatedAt: at(9)},
		{ID: "KEF3", FullName: "Omar, Jr", Phone: "+254733000000", Type: domain.RegistrationStudent, School: "Nyeri Islamic Academy", CreatedAt: at(14)},
	}
}

func TestComputeStats(t *testing.T) {
	st := ussd.ComputeStats(sampleRegs())
	local := func(h int) int { return time.Date(2024, 9, 1, h, 15, 0, 0, time.UTC).Local().Hour() }
	assert.Equal(t, domain.Stats{
		Total:    3,
		Students: 2,
		Teachers: 1,
		Schools:  map[string]int{"Wamy High School": 2, "Nyeri Islamic Academy": 1},
		Hourly:   map[int]int{local(9): 2, local(14): 1},
	}, st)
}

func TestExport_CSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ussd.Export(&buf, sampleRegs()[2:], ussd.FormatCSV))
	assert.Equal(t,
		"Registration ID,Full Name,Phone Number,Type,School,Registration Date\n"+
			"KEF3,\"Omar, Jr\",+254733000000,student,Nyeri Islamic Academy,2024-09-01T14:15:00Z\n",
		buf.String())
}

func TestExport_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ussd.Export(&buf, sampleRegs()[:1], "JSON"))

	var got []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "KEF1", got[0]["id"])
	assert.Equal(t, "student", got[0]["registrationType"])
}

func TestExport_Unsupported(t *testing.T) {
	err := ussd.Export(&bytes.Buffer{}, nil, "excel")
	assert.ErrorIs(t, err, ussd.ErrUnsupportedFormat)
}

func TestNewRegistrationID(t *testing.T) {
	now := time.UnixMilli(1725000000000)
	id := ussd.NewRegistrationID("KEF", now)
	assert.Regexp(t, regexp.MustCompile(`^KEF[0-9A-Z]+$`), id)
	assert.Len(t, id, len("KEF")+len("m0gqhtc0")+5)
	assert.NotEqual(t, id, ussd.NewRegistrationID("KEF", now.Add(time.Millisecond)))
}

func TestEvent(t *testing.T) {
	ev := ussd.DefaultEvent()
	assert.Equal(t, "September 14th, 2024", ev.DateLabel())

	ev.Date = "2024-03-22"
	assert.Equal(t, "March 22nd, 2024", ev.DateLabel())
	ev.Date = "2024-03-11"
	assert.Equal(t, "March 11th, 2024", ev.DateLabel())
	ev.Date = "soon"
	assert.Equal(t, "soon", ev.DateLabel())

	assert.Equal(t, "To register, dial *386*55# on your phone (+254700000001).\nRegistration instructions sent.",
		ussd.DefaultEvent().DialInstructions("+254700000001"))
}

func TestLoadSchools(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schools.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`schools:
  - name: Garissa Islamic High
    location: Garissa
  - id: 7
    name: Lamu Madrasa
`), 0o600))

	got, err := ussd.LoadSchools(path)
	require.NoError(t, err)
	assert.Equal(t, []domain.School{
		{ID: 1, Name: "Garissa Islamic High", Location: "Garissa"},
		{ID: 7, Name: "Lamu Madrasa"},
	}, got)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("schools: []\n"), 0o600))
	_, err = ussd.LoadSchools(bad)
	assert.Error(t, err)
}
