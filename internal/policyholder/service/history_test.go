package service

func (s *ServiceSuite) TestHistory() {
	s.Run("replays versions oldest first", func() {
		s.mustCreate("Pol400", "Ins400")
		s.Require().NoError(s.service.Update(s.ctx, "Pol400", "Ins400", "medium", 100))
		s.Require().NoError(s.service.Update(s.ctx, "Pol400", "Ins400", "high", 200))

		entries, err := s.service.History(s.ctx, "Pol400", "Ins400")
		s.Require().NoError(err)
		s.Require().Len(entries, 3)

		s.Equal("", entries[0].Value.RiskLevel)
		s.Equal("medium", entries[1].Value.RiskLevel)
		s.Equal("high", entries[2].Value.RiskLevel)
		for i := 1; i < len(entries); i++ {
			s.False(entries[i].Timestamp.Before(entries[i-1].Timestamp))
			s.NotEmpty(entries[i].TxID)
		}
	})

	s.Run("skips tombstones and unreadable versions", func() {
		s.mustCreate("Pol401", "Ins401")
		s.Require().NoError(s.service.Delete(s.ctx, "Pol401", "Ins401"))
		s.Require().NoError(s.store.Put(s.ctx, "Pol401:Ins401", []byte("not json")))

		entries, err := s.service.History(s.ctx, "Pol401", "Ins401")
		s.Require().NoError(err)
		s.Require().Len(entries, 1, "only the decodable creation snapshot survives")
		s.Equal("Pol401", entries[0].Value.PolicyholderID)
	})

	s.Run("unknown key yields an empty projection", func() {
		entries, err := s.service.History(s.ctx, "nope", "nope")
		s.Require().NoError(err)
		s.Empty(entries)
	})
}
