package service

import (
	"cyberins/internal/policyholder/models"
	dErrors "cyberins/pkg/domain-errors"
)

func (s *ServiceSuite) TestCheckObligations() {
	s.Run("full match returns true without writing", func() {
		s.mustCreate("Pol200", "Ins200")
		before := s.historyLen("Pol200", "Ins200")

		ok, err := s.service.CheckObligations(s.ctx, "Pol200", "Ins200")
		s.Require().NoError(err)
		s.True(ok)
		s.Equal(before, s.historyLen("Pol200", "Ins200"), "clean check must not write")
	})

	s.Run("mismatch decrements reputation by exactly one", func() {
		params := s.createParams("Pol201", "Ins201")
		params.Controls = models.ControlMap{"backup": models.IntControl(1)}
		_, err := s.service.Create(s.ctx, params)
		s.Require().NoError(err)

		ok, err := s.service.CheckObligations(s.ctx, "Pol201", "Ins201")
		s.Require().NoError(err)
		s.False(ok)

		record, err := s.service.Read(s.ctx, "Pol201", "Ins201")
		s.Require().NoError(err)
		s.Equal(int64(99), record.Reputation)
	})

	s.Run("reputation is non-increasing across repeated checks", func() {
		params := s.createParams("Pol202", "Ins202")
		params.Controls = models.ControlMap{"backup": models.IntControl(0)}
		_, err := s.service.Create(s.ctx, params)
		s.Require().NoError(err)

		for range 3 {
			ok, err := s.service.CheckObligations(s.ctx, "Pol202", "Ins202")
			s.Require().NoError(err)
			s.False(ok)
		}

		record, err := s.service.Read(s.ctx, "Pol202", "Ins202")
		s.Require().NoError(err)
		s.Equal(int64(97), record.Reputation)
	})

	s.Run("key count mismatch is an immediate violation", func() {
		params := s.createParams("Pol203", "Ins203")
		params.Controls = models.ControlMap{
			"backup": models.IntControl(9),
			"extra":  models.IntControl(1),
		}
		_, err := s.service.Create(s.ctx, params)
		s.Require().NoError(err)

		ok, err := s.service.CheckObligations(s.ctx, "Pol203", "Ins203")
		s.Require().NoError(err)
		s.False(ok)
	})

	s.Run("absent key is not found", func() {
		_, err := s.service.CheckObligations(s.ctx, "nope", "nope")
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}
