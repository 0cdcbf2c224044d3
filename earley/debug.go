package earley

func dumpState(chart []*state, stateno int) {
	tracer().Debugf("--- State %04d ------------------------------------", stateno)
	S := chart[stateno]
	for j := 0; j < S.size(); j++ {
		tracer().Debugf("[%2d] %s", j+1, S.at(j))
	}
}
