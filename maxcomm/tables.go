package maxcomm

type tableEntry struct {
	code  int
	label string
}

// Device type codes as listed in the MaxComm protocol description.
var deviceTypes = []tableEntry{
	{20812, "SolarMax 1440TS-SV MT"},
	{20809, "SolarMax 1080TS-SV MT"},
	{20806, "SolarMax 720TS-SV MT"},
	{20803, "SolarMax 360TS-SV MT"},
	{20712, "SolarMax 1440TS-SV ST"},
	{20709, "SolarMax 1080TS-SV ST"},
	{20706, "SolarMax 720TS-SV ST"},
	{20703, "SolarMax 360TS-SV ST"},
	{20700, "SolarMax 360TS-SV"},
	{20255, "SolarMax 20HT2"},
	{20254, "SolarMax 18MT3 A"},
	{20252, "SolarMax 15MT3 A"},
	{20250, "SolarMax 12MT2 A"},
	{20240, "SolarMax 18MT3 SV"},
	{20215, "SolarMax 8MT2"},
	{20213, "SolarMax 15MT2"},
	{20211, "SolarMax 13MT2"},
	{20210, "SolarMax 10MT2"},
	{11025, "SolarMax 3600SP"},
	{11020, "SolarMax 3000SP"},
	{11015, "SolarMax 2500SP"},
	{11010, "SolarMax 2000SP"},
	{11005, "SolarMax 1500SP"},
	{11000, "SolarMax 1000SP"},
	{10300, "MaxCount"},
	{10210, "MaxMeteo plus2T"},
	{10200, "MaxMeteo"},
	{20653, "SolarMax 4TP"},
	{20652, "SolarMax 5TP2"},
	{20651, "SolarMax 6TP2"},
	{20650, "SolarMax 7TP2"},
	{20640, "SolarMax 5000P"},
	{20635, "SolarMax 4600P"},
	{20630, "SolarMax 4000P"},
	{20620, "SolarMax 3000P"},
	{20610, "SolarMax 2000P"},
	{20512, "SolarMax 1320TS-SV MT"},
	{20509, "SolarMax 990TS-SV MT"},
	{20506, "SolarMax 660TS-SV MT"},
	{20503, "SolarMax 330TS-SV MT"},
	{20412, "SolarMax 1320TS-SV ST"},
	{20409, "SolarMax 990TS-SV ST"},
	{20406, "SolarMax 660TS-SV ST"},
	{20403, "SolarMax 330TS-SV ST"},
	{20318, "SolarMax 300TS MT"},
	{20316, "SolarMax 300TS ST"},
	{20314, "SolarMax 100TS"},
	{20312, "SolarMax 80TS"},
	{20310, "SolarMax 50TS"},
	{20266, "SolarMax 32HT2"},
	{20262, "SolarMax 32HT4"},
	{20260, "SolarMax 30HT4"},
	{20258, "SolarMax 25HT4"},
	{20257, "SolarMax 25HT2"},
	{20256, "SolarMax 20HT4"},
	{20208, "SolarMax 15MT3"},
	{20206, "SolarMax 13MT3"},
	{20202, "SolarMax 10MT"},
	{20100, "SolarMax 20S"},
	{20110, "SolarMax 35S"},
	{20040, "SolarMax 6000S"},
	{20030, "SolarMax 4200S"},
	{20020, "SolarMax 3000S"},
	{20010, "SolarMax 2000S"},
	{11120, "SolarMax 60SHT-S"},
	{11115, "SolarMax 50SHT-S"},
	{11110, "SolarMax 60SHT"},
	{11105, "SolarMax 50SHT"},
	{11100, "SolarMax 30SHT"},
	{11095, "SolarMax 28SHT"},
	{11090, "SolarMax 25SHT"},
	{11085, "SolarMax 22SHT"},
	{11080, "SolarMax 20SHT"},
	{11075, "SolarMax 17SHT"},
	{11070, "SolarMax 15SMT"},
	{11065, "SolarMax 13SMT"},
	{11060, "SolarMax 10SMT"},
	{11055, "SolarMax 8SMT"},
	{11050, "SolarMax 6SMT"},
	{11045, "SolarMax 6000SP"},
	{11040, "SolarMax 5000SP"},
	{11035, "SolarMax 4600SP"},
	{11030, "SolarMax 4000SP"},
	{6010, "SolarMax 6000C"},
	{6000, "SolarMax 6000E"},
	{4200, "SolarMax 4200C"},
	{4010, "SolarMax 4000C"},
	{4001, "SolarMax 4000"},
	{4000, "SolarMax 4000E"},
	{3010, "SolarMax 3000C"},
	{3001, "SolarMax 3000E"},
	{3000, "SolarMax 3000"},
	{2010, "SolarMax 2000C"},
	{2001, "SolarMax 2000E"},
	{2000, "SolarMax 2000"},
	{330, "SolarMax 330C-SV"},
	{300, "SolarMax 300C"},
	{126, "SolarMax 125"},
	{101, "SolarMax 100"},
	{100, "SolarMax 100C"},
	{80, "SolarMax 80C"},
	{61, "SolarMax 60"},
	{50, "SolarMax 50C"},
	{46, "SolarMax 45"},
	{41, "SolarMax 40"},
	{35, "SolarMax 35C"},
	{31, "SolarMax 30"},
	{30, "SolarMax 30C"},
	{25, "SolarMax 25C"},
	{21, "SolarMax 20"},
	{20, "SolarMax 20C"},
}

var statusCodes = []tableEntry{
	{20001, "Running (20001)"},
	{20002, "Irradiance too low (20002)"},
	{20003, "Startup (20003)"},
	{20004, "MPP operation (20004)"},
	{20006, "Maximum power (20006)"},
	{20007, "Temperature limitation (20007)"},
	{20008, "Mains operation (20008)"},
	{20009, "Idc limitation (20009)"},
	{20010, "Iac limitation (20010)"},
	{20011, "Test mode (20011)"},
	{20012, "Remote controlled (20012)"},
	{20013, "Restart delay (20013)"},
	{20014, "External limitation (20014)"},
	{20015, "Frequency limitation (20015)"},
	{20016, "Restart limitation (20016)"},
	{20017, "Booting (20017)"},
	{20018, "Insufficient boot power (20018)"},
	{20019, "Insufficient power (20019)"},
	{20021, "Uninitialized (20021)"},
	{20022, "Disabled (20022)"},
	{20023, "Idle (20023)"},
	{20024, "Powerunit not ready (20024)"},
	{20050, "Program firmware (20050)"},
	{20101, "Device error 101 (20101)"},
	{20102, "Device error 102 (20102)"},
	{20103, "Device error 103 (20103)"},
	{20104, "Device error 104 (20104)"},
	{20105, "Insulation fault DC (20105)"},
	{20106, "Insulation fault DC (20106)"},
	{20107, "Device error 107 (20107)"},
	{20108, "Device error 108 (20108)"},
	{20109, "Vdc too high (20109)"},
	{20110, "Device error 110 (20110)"},
	{20111, "Device error 111 (20111)"},
	{20112, "Device error 112 (20112)"},
	{20113, "Device error 113 (20113)"},
	{20114, "Ierr too high (20114)"},
	{20115, "No mains (20115)"},
	{20116, "Frequency too high (20116)"},
	{20117, "Frequency too low (20117)"},
	{20118, "Mains error (20118)"},
	{20119, "Vac 10min too high (20119)"},
	{20120, "Device error 120 (20120)"},
	{20121, "Device error 121 (20121)"},
	{20122, "Vac too high (20122)"},
	{20123, "Vac too low (20123)"},
	{20124, "Device error 124 (20124)"},
	{20125, "Device error 125 (20125)"},
	{20126, "Error ext. input 1 (20126)"},
	{20127, "Fault ext. input 2 (20127)"},
	{20128, "Device error 128 (20128)"},
	{20129, "Incorr. rotation dir. (20129)"},
	{20130, "Device error 130 (20130)"},
	{20131, "Main switch off (20131)"},
	{20132, "Device error 132 (20132)"},
	{20133, "Device error 133 (20133)"},
	{20134, "Device error 134 (20134)"},
	{20135, "Device error 135 (20135)"},
	{20136, "Device error 136 (20136)"},
	{20137, "Device error 137 (20137)"},
	{20138, "Device error 138 (20138)"},
	{20139, "Device error 139 (20139)"},
	{20140, "Device error 140 (20140)"},
	{20141, "Device error 141 (20141)"},
	{20142, "Device error 142 (20142)"},
	{20143, "Device error 143 (20143)"},
	{20144, "Device error 144 (20144)"},
	{20145, "df/dt too high (20145)"},
	{20146, "Device error 146 (20146)"},
	{20147, "Device error 147 (20147)"},
	{20148, "Device error 148 (20148)"},
	{20150, "Ierr step too high (20150)"},
	{20151, "Ierr step too high (20151)"},
	{20153, "Device error 153 (20153)"},
	{20154, "Shutdown 1 (20154)"},
	{20155, "Shutdown 2 (20155)"},
	{20156, "Device error 156 (20156)"},
	{20157, "Insulation fault DC (20157)"},
	{20158, "Device error 158 (20158)"},
	{20159, "Device error 159 (20159)"},
	{20160, "Device error 160 (20160)"},
	{20161, "Device error 161 (20161)"},
	{20163, "Device error 163 (20163)"},
	{20164, "Ierr too high (20164)"},
	{20165, "No mains (20165)"},
	{20166, "Frequency too high (20166)"},
	{20167, "Frequency too low (20167)"},
	{20168, "Mains error (20168)"},
	{20169, "Vac 10min too high (20169)"},
	{20170, "Device error 170 (20170)"},
	{20171, "Device error 171 (20171)"},
	{20172, "Vac too high (20172)"},
	{20173, "Vac too low (20173)"},
	{20174, "Device error 174 (20174)"},
	{20175, "Device error 175 (20175)"},
	{20176, "Error DC polarity (20176)"},
	{20177, "Device error 177 (20177)"},
	{20178, "Device error 178 (20178)"},
	{20179, "Device error 179 (20179)"},
	{20180, "Vdc too low (20180)"},
	{20181, "Blocked external (20181)"},
	{20185, "Device error 185 (20185)"},
	{20186, "Device error 186 (20186)"},
	{20187, "Device error 187 (20187)"},
	{20188, "Device error 188 (20188)"},
	{20189, "L and N interchanged (20189)"},
	{20190, "Below-average yield (20190)"},
	{20191, "Limitation error (20191)"},
	{20198, "Device error 198 (20198)"},
	{20199, "Device error 199 (20199)"},
	{20999, "Device error 999 (20999)"},
}

const noAlarm = "No Error"

// Alarm labels in bit order, starting at bit 0.
var alarmBits = []string{
	"External Fault 1",
	"Insulation fault DC side",
	"Earth fault current too large",
	"Fuse failure midpoint Earth",
	"External alarm 2",
	"Long-term temperature limit",
	"Error AC supply",
	"External alarm 4",
	"Fan failure",
	"Fuse failure",
	"Failure temperature sensor",
}

// NewDeviceTable returns the device model table used by the TYP field.
func NewDeviceTable() *EnumTable {
	return mustEnumTable(deviceTypes)
}

// NewStatusTable returns the operating status table used by the SYS field.
func NewStatusTable() *EnumTable {
	return mustEnumTable(statusCodes)
}

// NewAlarmTable returns the alarm bitmask table used by the SAL field.
func NewAlarmTable() *BitmaskTable {
	t := NewBitmaskTable(noAlarm)
	for _, label := range alarmBits {
		if err := t.Add(label); err != nil {
			panic(err)
		}
	}
	return t
}

func mustEnumTable(entries []tableEntry) *EnumTable {
	t := NewEnumTable()
	for _, e := range entries {
		if err := t.Add(e.code, e.label); err != nil {
			panic(err)
		}
	}
	return t
}
