package board

func pm(i int) *int { return &i }

// Cyclone IV GX Transceiver Starter Kit
func init() {
	register(&Profile{
		ID:     TransceiverKit,
		Name:   "Cyclone IV GX Transceiver Starter Kit",
		Device: "EP4CGX15",
		Rails: []RailDescriptor{
			//   Name             Res    PM idx  ADC  Rail#
			{"2.5_VCC", 0.003, pm(0), 0, 8},
			{"1.2_VCCL_GXB", 0.003, pm(1), 1, 1},
			{"2.5_VCC_GXB", 0.003, pm(2), 2, 2},
			{"2.5_VCCIO", 0.003, pm(3), 3, 3},
			{"1.2_VCCINT", 0.003, pm(4), 4, 4},
			{"1.2_VCCD_PLL", 0.003, pm(5), 5, 5},
			{UnusedRail, 0.003, nil, 6, 6},
			{UnusedRail, 0.003, nil, 7, 7},
		},
		Expected: []float64{0.040, 0.067, 0.057, 0.006, 0.168, 0.033, 0.000, 0.000},
	})
}

// Cyclone IV GX FPGA Development Kit
func init() {
	register(&Profile{
		ID:     DevelopmentKit,
		Name:   "Cyclone IV GX FPGA Development Kit",
		Device: "EP4CGX150",
		Rails: []RailDescriptor{
			{"VCCA", 0.003, pm(0), 0, 1},
			{"2.5V_VCCA_VCCH_GXB", 0.003, pm(1), 1, 2},
			{"2.5V_B5_B6", 0.009, pm(2), 2, 3},
			{"1.8V_B3_B4", 0.009, pm(3), 3, 4},
			{"1.8V_B7_B8", 0.009, pm(4), 4, 5},
			{"VCC", 0.003, pm(5), 5, 6},
			{"1.2V_VCCL_GXB", 0.003, pm(6), 6, 7},
			{"VCCD_PLL", 0.003, pm(7), 7, 8},
		},
		Expected: []float64{0.043, 0.011, 0.000, 0.000, 0.004, 0.304, 0.004, 0.027},
	})
}
