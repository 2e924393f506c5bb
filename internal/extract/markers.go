package extract

// Marker phrase sets for the rule-based detectors. All matching is
// case-insensitive substring search over the lowercased response.

var hedgingMarkers = []string{
	"maybe",
	"i think",
	"i guess",
	"i don't know",
	"not sure",
	"probably",
	"perhaps",
	"might be",
	"possibly",
	"kind of",
	"sort of",
	"i suppose",
}

var certaintyMarkers = []string{
	"definitely",
	"certainly",
	"obviously",
	"clearly",
	"of course",
	"i'm sure",
	"i am sure",
	"without a doubt",
	"absolutely",
	"always",
	"never",
}

var selfCorrectionMarkers = []string{
	"wait",
	"actually",
	"no, that's wrong",
	"let me rethink",
	"let me reconsider",
	"i was wrong",
	"on second thought",
	"hmm, no",
	"scratch that",
}

var boundaryMarkers = []string{
	"i don't understand",
	"i'm not sure about",
	"i don't know how",
	"this is where i get confused",
	"i can't explain",
	"beyond what i know",
	"i haven't learned",
	"i'm lost",
}

var monitoringMarkers = []string{
	"let me check",
	"does that make sense",
	"am i on the right track",
	"let me verify",
	"wait, is that right",
	"checking my work",
	"let me make sure",
}

var reflectionMarkers = []string{
	"now i realize",
	"looking back",
	"i used to think",
	"my understanding has changed",
	"i see why i was confused",
	"thinking about how i",
	"what helped me was",
}

var deductiveMarkers = []string{
	"therefore",
	"it follows that",
	"by definition",
	"in general",
	"the rule says",
	"applying the principle",
	"as a consequence",
	"given that",
}

var inductiveMarkers = []string{
	"for example",
	"for instance",
	"in my experience",
	"i noticed that",
	"like when",
	"one time",
	"this reminds me of",
	"a pattern",
}

var chainConnectives = []string{
	"therefore",
	"thus",
	"hence",
	"which means",
	"so then",
	"as a result",
	"consequently",
	"it follows",
}

var causalMarkers = []string{
	"because",
	"causes",
	"leads to",
	"results in",
	"due to",
	"depends on",
	"the reason",
	"that's why",
}

var concreteMarkers = []string{
	"for example",
	"for instance",
	"specifically",
	"like when",
	"in this case",
	"such as",
	"imagine",
	"picture",
}

var abstractMarkers = []string{
	"in general",
	"generally",
	"the principle",
	"the concept",
	"abstractly",
	"fundamentally",
	"in theory",
	"any case",
	"always true",
}

var curiosityMarkers = []string{
	"what if",
	"i wonder",
	"why does",
	"how come",
	"curious",
	"interesting",
	"what about",
	"can we try",
	"tell me more",
}

var frustrationMarkers = []string{
	"this is frustrating",
	"i give up",
	"too hard",
	"i hate",
	"this makes no sense",
	"whatever",
	"forget it",
	"i'm done",
	"pointless",
}

var masteryMarkers = []string{
	"i want to understand",
	"help me learn",
	"i want to get better",
	"understand why",
	"make sense of",
	"figure out how",
}

var performanceMarkers = []string{
	"is that the right answer",
	"did i pass",
	"what's my score",
	"just tell me the answer",
	"is that correct",
	"did i get it right",
}

var structureMarkers = []string{
	"first",
	"then",
	"next",
	"finally",
	"step",
	"in other words",
	"to summarize",
}

var exampleMarkers = []string{
	"for example",
	"for instance",
	"such as",
	"like when",
	"imagine",
}

var connectionMarkers = []string{
	"this relates to",
	"similar to",
	"that means",
	"connects to",
	"just like",
	"the same way",
	"depends on",
}

var insightMarkers = []string{
	"oh!",
	"aha",
	"i see",
	"i get it",
	"now i understand",
	"that makes sense now",
	"wait, so",
	"it clicked",
}
