package constants

const (
	EnterContestPath = "/EnterContest/:id" // 进入比赛, 签发比赛会话 token
	GetContestPath   = "/GetContest/:id"   // 获取比赛详情
)

const (
	CreateSubmissionPath  = "/CreateSubmission"  // 提交比赛题目
	GetSubmissionListPath = "/GetSubmissionList" // 获取提交列表(不含代码)
	GetSubmissionPath     = "/GetSubmission/:id" // 获取单条提交(含代码)

	GetLatestSubmissionPath = "/GetLatestSubmission" // 获取本人最近一次提交
)

const (
	GetStandingsPath    = "/GetStandings"    // 获取比赛排行榜
	ExportStandingsPath = "/ExportStandings" // 导出比赛排行榜
)

const (
	LinkCredentialPath      = "/admin/LinkCredential"      // 绑定远程评测账号
	UnlinkCredentialPath    = "/admin/UnlinkCredential"    // 解绑远程评测账号
	GetCredentialStatusPath = "/admin/GetCredentialStatus" // 查询远程评测账号状态
	RejudgeSubmissionPath   = "/admin/RejudgeSubmission/:id"
	GetActivePollListPath   = "/admin/GetActivePollList"   // 查询在途轮询
	ExportSubmissionLogPath = "/admin/ExportSubmissionLog" // 导出比赛提交记录
)

const (
	JoinContestEventsPath = "/JoinContestEvents" // SSE 订阅比赛事件
)
