package service

import (
	"cyberins/internal/policyholder/models"
	dErrors "cyberins/pkg/domain-errors"
)

func (s *ServiceSuite) TestReportIncident() {
	s.Run("appends an open incident", func() {
		s.mustCreate("Pol300", "Ins300")

		s.Require().NoError(s.service.ReportIncident(s.ctx, "Pol300", "Ins300", "Inc001", "ransomware", 16000))

		record, err := s.service.Read(s.ctx, "Pol300", "Ins300")
		s.Require().NoError(err)
		s.Require().Len(record.Incidents, 1)
		s.Equal(models.IncidentOpen, record.Incidents[0].Status)
		s.Equal("", record.Incidents[0].Message)
		s.Equal(int64(16000), record.Incidents[0].Indemnification)
	})

	s.Run("absent record is not found, nothing written", func() {
		err := s.service.ReportIncident(s.ctx, "nope", "nope", "Inc001", "ransomware", 1)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
		s.Equal(0, s.historyLen("nope", "nope"))
	})

	s.Run("duplicate incident ids are stored as reported", func() {
		s.mustCreate("Pol301", "Ins301")
		s.Require().NoError(s.service.ReportIncident(s.ctx, "Pol301", "Ins301", "dup", "phishing", 100))
		s.Require().NoError(s.service.ReportIncident(s.ctx, "Pol301", "Ins301", "dup", "hacker", 200))

		record, err := s.service.Read(s.ctx, "Pol301", "Ins301")
		s.Require().NoError(err)
		s.Len(record.Incidents, 2)
	})
}

func (s *ServiceSuite) TestResponseIncident() {
	s.Run("settles within all ceilings", func() {
		s.mustCreate("Pol302", "Ins302") // Deductible 10000, Limit 10000000
		s.Require().NoError(s.service.ReportIncident(s.ctx, "Pol302", "Ins302", "Inc001", "ransomware", 16000))

		message, err := s.service.ResponseIncident(s.ctx, "Pol302", "Ins302", "Inc001")
		s.Require().NoError(err)
		s.Equal("Incident resolved. Limit is reduced by 6000", message)

		record, err := s.service.Read(s.ctx, "Pol302", "Ins302")
		s.Require().NoError(err)
		s.Equal(int64(9994000), record.Limit)
		s.Equal(models.IncidentResolved, record.Incidents[0].Status)
		s.Equal(message, record.Incidents[0].Message)
	})

	s.Run("claim below deductible resolves without deduction", func() {
		s.mustCreate("Pol303", "Ins303")
		s.Require().NoError(s.service.ReportIncident(s.ctx, "Pol303", "Ins303", "Inc001", "phishing", 1000))

		message, err := s.service.ResponseIncident(s.ctx, "Pol303", "Ins303", "Inc001")
		s.Require().NoError(err)
		s.Equal("Incident resolved. Limit no changed.", message)

		record, err := s.service.Read(s.ctx, "Pol303", "Ins303")
		s.Require().NoError(err)
		s.Equal(int64(10000000), record.Limit)
		s.Equal(models.IncidentResolved, record.Incidents[0].Status)
	})

	s.Run("unknown incident id is a message, not an error", func() {
		s.mustCreate("Pol304", "Ins304")
		before := s.historyLen("Pol304", "Ins304")

		message, err := s.service.ResponseIncident(s.ctx, "Pol304", "Ins304", "ghost")
		s.Require().NoError(err)
		s.Equal(MessageIncidentNotFound, message)
		s.Equal(before, s.historyLen("Pol304", "Ins304"))
	})

	s.Run("second resolution is a no-op", func() {
		s.mustCreate("Pol305", "Ins305")
		s.Require().NoError(s.service.ReportIncident(s.ctx, "Pol305", "Ins305", "Inc001", "ransomware", 16000))

		_, err := s.service.ResponseIncident(s.ctx, "Pol305", "Ins305", "Inc001")
		s.Require().NoError(err)
		before := s.historyLen("Pol305", "Ins305")

		message, err := s.service.ResponseIncident(s.ctx, "Pol305", "Ins305", "Inc001")
		s.Require().NoError(err)
		s.Equal(MessageIncidentAlreadyClosed, message)
		s.Equal(before, s.historyLen("Pol305", "Ins305"), "already-resolved must not write")
	})

	s.Run("only the first duplicate is ever resolved", func() {
		s.mustCreate("Pol306", "Ins306")
		s.Require().NoError(s.service.ReportIncident(s.ctx, "Pol306", "Ins306", "dup", "phishing", 16000))
		s.Require().NoError(s.service.ReportIncident(s.ctx, "Pol306", "Ins306", "dup", "hacker", 16000))

		_, err := s.service.ResponseIncident(s.ctx, "Pol306", "Ins306", "dup")
		s.Require().NoError(err)

		record, err := s.service.Read(s.ctx, "Pol306", "Ins306")
		s.Require().NoError(err)
		s.Equal(models.IncidentResolved, record.Incidents[0].Status)
		s.Equal(models.IncidentOpen, record.Incidents[1].Status)

		// A second response hits the resolved first match and stops.
		message, err := s.service.ResponseIncident(s.ctx, "Pol306", "Ins306", "dup")
		s.Require().NoError(err)
		s.Equal(MessageIncidentAlreadyClosed, message)

		record, err = s.service.Read(s.ctx, "Pol306", "Ins306")
		s.Require().NoError(err)
		s.Equal(models.IncidentOpen, record.Incidents[1].Status)
	})

	s.Run("absent record is not found", func() {
		_, err := s.service.ResponseIncident(s.ctx, "nope", "nope", "Inc001")
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}
